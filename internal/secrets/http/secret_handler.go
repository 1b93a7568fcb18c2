package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/secretstash/internal/errors"
	"github.com/allisson/secretstash/internal/httputil"
	"github.com/allisson/secretstash/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/secretstash/internal/secrets/usecase"
	customValidation "github.com/allisson/secretstash/internal/validation"
)

// SecretHandler handles HTTP requests for per-owner secret management.
// The owner ID is taken from the request context set by OwnerMiddleware.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// ListHandler lists the owner's secrets.
// GET /v1/secrets?include_values=true
// Returns 200 OK with metadata, or decrypted values when include_values is true.
func (h *SecretHandler) ListHandler(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	includeValues, err := httputil.ParseBoolQuery(c, "include_values")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.List(c.Request.Context(), ownerID, includeValues)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets))
}

// GetHandler returns a single secret.
// GET /v1/secrets/:name?include_value=true
// Retrieving the value records the access time.
func (h *SecretHandler) GetHandler(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := dto.ValidateSecretName(name); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	includeValue, err := httputil.ParseBoolQuery(c, "include_value")
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	secret, err := h.secretUseCase.Get(c.Request.Context(), ownerID, name, includeValue)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToResponse(secret))
}

// UpsertHandler creates a secret or replaces its value.
// PUT /v1/secrets/:name
// Returns 200 OK with the resulting metadata. The value is never echoed back.
func (h *SecretHandler) UpsertHandler(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := dto.ValidateSecretName(name); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var req dto.UpsertSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	metadata, err := h.secretUseCase.Upsert(c.Request.Context(), ownerID, name, req.Value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMetadataToResponse(metadata))
}

// DeleteHandler removes a secret.
// DELETE /v1/secrets/:name
// Returns 204 No Content, or 404 when the secret does not exist.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	ownerID, ok := h.owner(c)
	if !ok {
		return
	}

	name := c.Param("name")
	if err := dto.ValidateSecretName(name); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	deleted, err := h.secretUseCase.Delete(c.Request.Context(), ownerID, name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if !deleted {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SecretHandler) owner(c *gin.Context) (string, bool) {
	ownerID, ok := GetOwner(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return "", false
	}
	return ownerID, true
}
