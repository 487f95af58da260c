package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetmind-team/meetmind/errors"
	"github.com/meetmind-team/meetmind/internal/domain/entities"
	"github.com/meetmind-team/meetmind/internal/infrastructure/cache"
	"github.com/meetmind-team/meetmind/pkg/session"
)

const subjectCacheTTL = 15 * time.Minute

// UserStore is the persistence surface the identity service needs
type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindBySubject(ctx context.Context, subject string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	DeleteBySubject(ctx context.Context, subject string) error
}

// Service mirrors identity-provider users locally and resolves session
// subjects to local user records.
type Service struct {
	users  UserStore
	cache  cache.Store
	logger *zap.Logger
}

// NewService constructs the identity service
func NewService(users UserStore, cacheStore cache.Store, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		cache:  cacheStore,
		logger: logger,
	}
}

// Resolve maps a provider subject to the local user. It does NOT create
// missing users: callers on data endpoints must see the not-synced state.
func (s *Service) Resolve(ctx context.Context, subject string) (*entities.User, error) {
	if cached, ok, err := s.cache.Get(ctx, cacheKey(subject)); err == nil && ok {
		if id, err := uuid.Parse(cached); err == nil {
			if user, err := s.users.FindByID(ctx, id); err == nil {
				return user, nil
			}
			// Stale cache entry, fall through to the database
			_ = s.cache.Delete(ctx, cacheKey(subject))
		}
	}

	user, err := s.users.FindBySubject(ctx, subject)
	if err == entities.ErrUserNotFound {
		return nil, apperrors.ErrUserNotSynced()
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	if err := s.cache.Set(ctx, cacheKey(subject), user.ID.String(), subjectCacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache subject", zap.Error(err))
	}
	return user, nil
}

// SyncFromClaims returns the local user for a session, creating or updating
// the mirror from the token claims when needed. Only the profile endpoint
// uses this; data endpoints rely on Resolve.
func (s *Service) SyncFromClaims(ctx context.Context, claims *session.Claims) (*entities.User, error) {
	user, err := s.users.FindBySubject(ctx, claims.Subject)
	if err == entities.ErrUserNotFound {
		user = entities.NewUser(claims.Subject, claims.Email)
		applyClaims(user, claims)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, apperrors.ErrInternal(err)
		}
		if s.logger != nil {
			s.logger.Info("user synced on access", zap.String("subject", claims.Subject))
		}
		return user, nil
	}
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	if claimsDiffer(user, claims) {
		applyClaims(user, claims)
		if err := s.users.Update(ctx, user); err != nil {
			return nil, apperrors.ErrInternal(err)
		}
	}
	return user, nil
}

// WebhookEvent is the provider's user lifecycle notification payload
type WebhookEvent struct {
	Type string       `json:"type"`
	Data WebhookUser  `json:"data"`
}

// WebhookUser is the user object inside a webhook event
type WebhookUser struct {
	Subject   string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// HandleWebhook applies a provider user lifecycle event to the local mirror
func (s *Service) HandleWebhook(ctx context.Context, event *WebhookEvent) error {
	if event.Data.Subject == "" {
		return apperrors.ErrInvalidPayload()
	}

	switch event.Type {
	case "user.created", "user.updated":
		user, err := s.users.FindBySubject(ctx, event.Data.Subject)
		if err == entities.ErrUserNotFound {
			user = entities.NewUser(event.Data.Subject, event.Data.Email)
			applyWebhookUser(user, &event.Data)
			if err := s.users.Create(ctx, user); err != nil {
				return apperrors.ErrInternal(err)
			}
		} else if err != nil {
			return apperrors.ErrInternal(err)
		} else {
			applyWebhookUser(user, &event.Data)
			if err := s.users.Update(ctx, user); err != nil {
				return apperrors.ErrInternal(err)
			}
		}
	case "user.deleted":
		if err := s.users.DeleteBySubject(ctx, event.Data.Subject); err != nil {
			return apperrors.ErrInternal(err)
		}
	default:
		return apperrors.ErrInvalidArgument("unknown webhook event type")
	}

	if err := s.cache.Delete(ctx, cacheKey(event.Data.Subject)); err != nil && s.logger != nil {
		s.logger.Warn("failed to invalidate subject cache", zap.Error(err))
	}
	if s.logger != nil {
		s.logger.Info("identity webhook applied",
			zap.String("type", event.Type),
			zap.String("subject", event.Data.Subject))
	}
	return nil
}

func cacheKey(subject string) string {
	return "identity:subject:" + subject
}

func applyClaims(user *entities.User, claims *session.Claims) {
	if claims.Email != "" {
		user.Email = claims.Email
	}
	user.FirstName = claims.FirstName
	user.LastName = claims.LastName
	if claims.ImageURL != "" {
		imageURL := claims.ImageURL
		user.ImageURL = &imageURL
	}
}

func claimsDiffer(user *entities.User, claims *session.Claims) bool {
	if claims.Email != "" && user.Email != claims.Email {
		return true
	}
	if user.FirstName != claims.FirstName || user.LastName != claims.LastName {
		return true
	}
	if claims.ImageURL != "" && (user.ImageURL == nil || *user.ImageURL != claims.ImageURL) {
		return true
	}
	return false
}

func applyWebhookUser(user *entities.User, data *WebhookUser) {
	if data.Email != "" {
		user.Email = data.Email
	}
	user.FirstName = data.FirstName
	user.LastName = data.LastName
	if data.ImageURL != "" {
		imageURL := data.ImageURL
		user.ImageURL = &imageURL
	} else {
		user.ImageURL = nil
	}
}
