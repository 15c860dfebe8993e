package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pressroom-backend/internal/domains/content"
	"pressroom-backend/internal/domains/publish"
	"pressroom-backend/internal/domains/site"
	"pressroom-backend/internal/shared/response"
)

type PublishHandler struct {
	service publish.Service
}

func NewPublishHandler(service publish.Service) *PublishHandler {
	return &PublishHandler{service: service}
}

// Publish binds the request and hands it to the orchestrator as is.
// Validation happens there, after idea defaults have been applied.
func (h *PublishHandler) Publish(c *gin.Context) {
	var req publish.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Publish(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *PublishHandler) Schedule(c *gin.Context) {
	var req publish.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Schedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *PublishHandler) ListScheduled(c *gin.Context) {
	posts, err := h.service.ListScheduled(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, posts)
}

// renderError resolves which domain produced the failure: gateway
// errors carry a kind, article lookups come from the content domain,
// site lookups from the site domain, the rest is the orchestrator's own.
func (h *PublishHandler) renderError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.BadRequest(c, err.Error())
		return
	}
	if response.GatewayError(c, err) {
		return
	}
	if status := content.GetHTTPStatusCode(err); status != http.StatusInternalServerError {
		response.ErrorResponse(c, status, "CONTENT_ERROR", content.GetErrorMessage(err))
		return
	}
	if status := site.GetHTTPStatusCode(err); status != http.StatusInternalServerError {
		response.ErrorResponse(c, status, "SITE_ERROR", site.GetErrorMessage(err))
		return
	}
	response.ErrorResponse(c, publish.GetHTTPStatusCode(err), "PUBLISH_ERROR", publish.GetErrorMessage(err))
}
