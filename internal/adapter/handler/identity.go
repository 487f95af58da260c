package handler

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetmind-team/meetmind/errors"
	"github.com/meetmind-team/meetmind/internal/adapter/presenter"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
	"github.com/meetmind-team/meetmind/pkg/signature"
)

// Identity handles the profile endpoint and the provider webhook
type Identity struct {
	identity      *identity.Service
	webhookSecret string
	logger        *zap.Logger
}

// NewIdentity creates a new identity handler
func NewIdentity(identitySvc *identity.Service, webhookSecret string, logger *zap.Logger) *Identity {
	return &Identity{
		identity:      identitySvc,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// Me returns the caller's local user record
// @Summary      Get current user
// @Description  Returns the local mirror of the session user, creating it from the session claims on first access
// @Tags         Identity
// @Produce      json
// @Success      200  {object}  identity.UserResponse
// @Security     BearerAuth
// @Router       /me [get]
func (h *Identity) Me(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	user, err := h.identity.SyncFromClaims(c.Request().Context(), claims)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}

// Webhook applies identity provider user lifecycle events
// @Summary      Identity provider webhook
// @Description  Receives HMAC-signed user.created/user.updated/user.deleted events and syncs the local user mirror
// @Tags         Identity
// @Accept       json
// @Produce      json
// @Param        X-Signature  header  string  true  "Hex sha256 HMAC of the body"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}  "Invalid signature"
// @Router       /webhooks/identity [post]
func (h *Identity) Webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	sig := c.Request().Header.Get("X-Signature")
	if !signature.VerifyHMAC(h.webhookSecret, body, sig) {
		if h.logger != nil {
			h.logger.Warn("webhook signature rejected", zap.String("request_id", getRequestID(c)))
		}
		return HandleError(h.logger, c, errors.ErrInvalidWebhookSignature())
	}

	var event identity.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if err := h.identity.HandleWebhook(c.Request().Context(), &event); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"received": event.Type})
}
