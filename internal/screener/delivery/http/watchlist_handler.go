package http

import (
	"net/http"
	"strings"

	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/internal/screener/service"
	"golang-idx-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WatchlistHandler handles watchlist requests.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Pin)
	g.DELETE("/:ticker", h.Remove)
	g.GET("/export", h.Export)
}

// List godoc
// @Summary Get the watchlist
// @Tags watchlist
// @Produce json
// @Success 200 {object} dto.WatchlistResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [get]
func (h *WatchlistHandler) List(c echo.Context) error {
	tickers, err := h.watchlistService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to load watchlist"})
	}
	return c.JSON(http.StatusOK, dto.WatchlistResponse{Tickers: tickers})
}

// Pin godoc
// @Summary Pin a ticker
// @Description Prepends the ticker to the watchlist; pinning an existing member is a no-op.
// @Tags watchlist
// @Accept json
// @Produce json
// @Param ticker body dto.PinRequest true "Ticker to pin"
// @Success 200 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist [post]
func (h *WatchlistHandler) Pin(c echo.Context) error {
	var req dto.PinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: "Invalid request payload"})
	}
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: "Ticker is required"})
	}

	tickers, err := h.watchlistService.Pin(c.Request().Context(), ticker)
	if err != nil {
		h.logger.Error("Failed to pin ticker", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to pin ticker"})
	}
	return c.JSON(http.StatusOK, dto.WatchlistResponse{Tickers: tickers})
}

// Remove godoc
// @Summary Remove a ticker
// @Description Removes the ticker from the watchlist; removing a non-member is a no-op.
// @Tags watchlist
// @Produce json
// @Param ticker path string true "Ticker to remove"
// @Success 200 {object} dto.WatchlistResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/{ticker} [delete]
func (h *WatchlistHandler) Remove(c echo.Context) error {
	tickers, err := h.watchlistService.Remove(c.Request().Context(), c.Param("ticker"))
	if err != nil {
		h.logger.Error("Failed to remove ticker", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to remove ticker"})
	}
	return c.JSON(http.StatusOK, dto.WatchlistResponse{Tickers: tickers})
}

// Export godoc
// @Summary Export the watchlist
// @Description Returns the watchlist comma-joined as plain text.
// @Tags watchlist
// @Produce plain
// @Success 200 {string} string
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlist/export [get]
func (h *WatchlistHandler) Export(c echo.Context) error {
	tickers, err := h.watchlistService.List(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to load watchlist"})
	}
	return c.String(http.StatusOK, h.watchlistService.Serialize(tickers))
}
