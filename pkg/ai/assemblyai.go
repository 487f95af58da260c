package ai

import (
	"context"
	"fmt"
	"io"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/cenkalti/backoff/v4"

	"github.com/meetmind-team/meetmind/pkg/config"
)

// AssemblyAIClient wraps the official SDK for speech-to-text on uploaded
// meeting recordings.
type AssemblyAIClient struct {
	client       *aai.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewAssemblyAIClient creates an AssemblyAI client from config
func NewAssemblyAIClient(cfg *config.AssemblyConfig) *AssemblyAIClient {
	pollInterval := 3 * time.Second
	pollTimeout := 10 * time.Minute
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
		if cfg.PollInterval > 0 {
			pollInterval = cfg.PollInterval
		}
		if cfg.PollTimeout > 0 {
			pollTimeout = cfg.PollTimeout
		}
	}
	return &AssemblyAIClient{
		client:       aai.NewClient(apiKey),
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// TranscribeStream uploads an audio stream and transcribes it
func (c *AssemblyAIClient) TranscribeStream(ctx context.Context, audio io.Reader) (string, error) {
	audioURL, err := c.client.Upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	return c.TranscribeFromURL(ctx, audioURL)
}

// TranscribeFromURL submits a transcription job for an audio URL and polls
// until it completes or errors. Polling backs off exponentially up to the
// configured interval and gives up after the poll timeout.
func (c *AssemblyAIClient) TranscribeFromURL(ctx context.Context, audioURL string) (string, error) {
	transcript, err := c.client.Transcripts.SubmitFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to submit transcription job: %w", err)
	}
	if transcript.ID == nil {
		return "", fmt.Errorf("transcription job has no id")
	}
	jobID := *transcript.ID

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = c.pollInterval
	policy.MaxElapsedTime = c.pollTimeout

	var text string
	operation := func() error {
		current, err := c.client.Transcripts.Get(ctx, jobID)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to poll transcription job: %w", err))
		}
		switch current.Status {
		case aai.TranscriptStatusCompleted:
			if current.Text != nil {
				text = *current.Text
			}
			return nil
		case aai.TranscriptStatusError:
			msg := "unknown error"
			if current.Error != nil {
				msg = *current.Error
			}
			return backoff.Permanent(fmt.Errorf("transcription failed: %s", msg))
		default:
			return fmt.Errorf("transcription job %s still %s", jobID, current.Status)
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return "", err
	}
	return text, nil
}
