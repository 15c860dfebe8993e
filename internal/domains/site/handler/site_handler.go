package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pressroom-backend/internal/domains/site"
	"pressroom-backend/internal/shared/response"
)

type SiteHandler struct {
	service site.Service
}

func NewSiteHandler(service site.Service) *SiteHandler {
	return &SiteHandler{service: service}
}

// Sync merges a registry snapshot. An empty body means "use the
// host-owned registry key".
func (h *SiteHandler) Sync(c *gin.Context) {
	var req site.SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	result, err := h.service.Sync(c.Request.Context(), req.Sites)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *SiteHandler) List(c *gin.Context) {
	sites, err := h.service.ListSites(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]site.SiteResponse, 0, len(sites))
	for _, s := range sites {
		resp = append(resp, site.NewSiteResponse(s))
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *SiteHandler) Get(c *gin.Context) {
	s, err := h.service.GetSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, site.NewSiteResponse(*s))
}

func (h *SiteHandler) Reload(c *gin.Context) {
	s, err := h.service.ReloadSite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, site.NewSiteResponse(*s))
}

func (h *SiteHandler) Connectivity(c *gin.Context) {
	report, err := h.service.CheckConnectivity(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *SiteHandler) CreateTag(c *gin.Context) {
	var req site.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, tag)
}

func (h *SiteHandler) renderError(c *gin.Context, err error) {
	if response.GatewayError(c, err) {
		return
	}
	response.ErrorResponse(c, site.GetHTTPStatusCode(err), "SITE_ERROR", site.GetErrorMessage(err))
}
