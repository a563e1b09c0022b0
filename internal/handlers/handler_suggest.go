package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/daily-verse/backend/internal/core/ports/services"
	"github.com/daily-verse/backend/internal/dto"
	"github.com/daily-verse/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// suggestHandler exposes the mock suggestion modes.
type suggestHandler struct {
	suggestService portssvc.SuggestSvcFacade
}

func newSuggestHandler(suggestService portssvc.SuggestSvcFacade) *suggestHandler {
	return &suggestHandler{suggestService: suggestService}
}

func registerSuggestRoutes(rg *gin.RouterGroup, suggestService portssvc.SuggestSvcFacade) {
	h := newSuggestHandler(suggestService)

	suggest := rg.Group("/suggest")
	{
		suggest.POST("/continue", h.suggestContinue)
		suggest.POST("/rhymes", h.suggestRhymes)
		suggest.POST("/soft-edit", h.suggestSoftEdit)
	}
}

func (h *suggestHandler) suggestContinue(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.suggestService.Continue(req))
}

func (h *suggestHandler) suggestRhymes(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.suggestService.Rhymes(req))
}

func (h *suggestHandler) suggestSoftEdit(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.suggestService.SoftEdit(req))
}

func (h *suggestHandler) bind(c *gin.Context) (dto.SuggestRequest, bool) {
	var req dto.SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for Suggest", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid suggest payload: " + err.Error()})
		return dto.SuggestRequest{}, false
	}
	return req, true
}
