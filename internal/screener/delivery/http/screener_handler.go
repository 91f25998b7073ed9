package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/internal/screener/service"
	"golang-idx-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScreenerHandler handles scan and view requests.
type ScreenerHandler struct {
	scanService     service.ScanService
	screenerService service.ScreenerService
	paramsService   service.ParamsService
	logger          *logger.Logger
}

// NewScreenerHandler creates a new ScreenerHandler.
func NewScreenerHandler(scanService service.ScanService, screenerService service.ScreenerService, paramsService service.ParamsService, logger *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		scanService:     scanService,
		screenerService: screenerService,
		paramsService:   paramsService,
		logger:          logger,
	}
}

// RegisterRoutes registers the screener routes to the Echo group.
func (h *ScreenerHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/scan", h.Scan)
	g.GET("/view", h.View)
}

// Scan godoc
// @Summary Run a fresh scan
// @Description Fetch the IDX snapshot from the scanner and derive all rows. Replaces the previous result set; on failure the last-known set is preserved.
// @Tags screener
// @Produce json
// @Success 200 {object} dto.ScanResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /screener/scan [post]
func (h *ScreenerHandler) Scan(c echo.Context) error {
	result, err := h.scanService.Scan(c.Request().Context())
	if err != nil {
		return h.scanError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ScanResponse{
		Ok:        true,
		Rows:      result.Rows,
		FetchedAt: result.FetchedAt,
	})
}

// scanError maps scan failures to API responses: upstream status passes
// through with the body as details, a malformed response is a 502, anything
// else (network level) is a 500.
func (h *ScreenerHandler) scanError(c echo.Context, err error) error {
	var upstreamErr *dto.UpstreamStatusError
	switch {
	case errors.As(err, &upstreamErr):
		return c.JSON(upstreamErr.StatusCode, dto.ErrorResponse{
			Ok:      false,
			Error:   upstreamErr.Error(),
			Details: upstreamErr.Body,
		})
	case errors.Is(err, dto.ErrUnexpectedResponseFormat):
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{
			Ok:    false,
			Error: dto.ErrUnexpectedResponseFormat.Error(),
		})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Ok:    false,
			Error: err.Error(),
		})
	}
}

// View godoc
// @Summary Compute the current screening view
// @Description Filter, rank and paginate the latest scan snapshot using the persisted params for the requested mode.
// @Tags screener
// @Produce json
// @Param mode query string false "BTST or BPJS" default(BTST)
// @Param search query string false "Case-insensitive ticker substring"
// @Param sort_key query string false "valueB, change, vwapDistPct or wickPct" default(valueB)
// @Param sort_order query string false "asc or desc" default(desc)
// @Param page query int false "1-indexed page" default(1)
// @Param page_size query int false "25 or 50" default(25)
// @Success 200 {object} dto.ViewResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /screener/view [get]
func (h *ScreenerHandler) View(c echo.Context) error {
	req, err := parseViewRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: err.Error()})
	}

	params, err := h.paramsService.Load(c.Request().Context(), req.Mode)
	if err != nil {
		h.logger.Error("Failed to load params for view", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to load params"})
	}

	var rows []entity.ScanRow
	var fetchedAt *time.Time
	if snapshot, ok := h.scanService.Snapshot(); ok {
		rows = snapshot.Rows
		fetchedAt = &snapshot.FetchedAt
	}

	view := h.screenerService.ComputeView(rows, params, req)
	view.FetchedAt = fetchedAt

	return c.JSON(http.StatusOK, view)
}

func parseViewRequest(c echo.Context) (dto.ViewRequest, error) {
	req := dto.ViewRequest{
		Mode:      entity.ModeBTST,
		Search:    c.QueryParam("search"),
		SortKey:   entity.SortKeyValueB,
		SortOrder: entity.SortOrderDesc,
		Page:      1,
		PageSize:  service.DefaultPageSize,
	}

	if s := c.QueryParam("mode"); s != "" {
		mode, err := entity.ParseMode(s)
		if err != nil {
			return req, err
		}
		req.Mode = mode
	}
	if s := c.QueryParam("sort_key"); s != "" {
		key, err := entity.ParseSortKey(s)
		if err != nil {
			return req, err
		}
		req.SortKey = key
	}
	if s := c.QueryParam("sort_order"); s != "" {
		order, err := entity.ParseSortOrder(s)
		if err != nil {
			return req, err
		}
		req.SortOrder = order
	}
	if s := c.QueryParam("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			return req, errors.New("invalid page")
		}
		req.Page = page
	}
	if s := c.QueryParam("page_size"); s != "" {
		pageSize, err := strconv.Atoi(s)
		if err != nil {
			return req, errors.New("invalid page size")
		}
		req.PageSize = pageSize
	}

	return req, nil
}
