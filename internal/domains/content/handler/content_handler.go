package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pressroom-backend/internal/domains/content"
	"pressroom-backend/internal/shared/response"
)

type ContentHandler struct {
	service content.Service
}

func NewContentHandler(service content.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) CreateIdea(c *gin.Context) {
	var req content.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	idea, err := h.service.CreateIdea(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, idea)
}

func (h *ContentHandler) ListIdeas(c *gin.Context) {
	ideas, err := h.service.ListIdeas(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ideas)
}

func (h *ContentHandler) GetIdea(c *gin.Context) {
	idea, err := h.service.GetIdea(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, idea)
}

func (h *ContentHandler) DeleteIdea(c *gin.Context) {
	if err := h.service.DeleteIdea(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *ContentHandler) ProduceArticle(c *gin.Context) {
	article, err := h.service.ProduceArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, article)
}

func (h *ContentHandler) ListArticles(c *gin.Context) {
	articles, err := h.service.ListArticles(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, articles)
}

func (h *ContentHandler) GetArticle(c *gin.Context) {
	article, err := h.service.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, article)
}

func (h *ContentHandler) Usage(c *gin.Context) {
	usage, err := h.service.Usage(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, usage)
}

func (h *ContentHandler) renderError(c *gin.Context, err error) {
	response.ErrorResponse(c, content.GetHTTPStatusCode(err), "CONTENT_ERROR", content.GetErrorMessage(err))
}
