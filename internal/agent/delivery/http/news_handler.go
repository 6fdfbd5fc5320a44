package http

import (
	"errors"
	"net/http"
	"strings"

	"company-news-agent/internal/agent/dto"
	"company-news-agent/internal/agent/service"
	"company-news-agent/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NewsHandler handles HTTP requests for news aggregation.
type NewsHandler struct {
	newsService service.NewsService
	logger      *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(newsService service.NewsService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{newsService: newsService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/news", h.SearchNews)
}

// Health reports service liveness.
func (h *NewsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// SearchNews aggregates articles for the queried entity. A missing or blank
// query is a client error; provider failures shrink the result set instead of
// failing the request.
func (h *NewsHandler) SearchNews(c echo.Context) error {
	var req dto.SearchNewsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "`query` is required"})
	}

	items, err := h.newsService.Search(c.Request().Context(), req.Query, req.Limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.Error("Unexpected error handling news search", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:  "Unexpected server error",
			Detail: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, items)
}
