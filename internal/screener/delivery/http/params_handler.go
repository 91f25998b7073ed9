package http

import (
	"net/http"

	"golang-idx-screener/internal/entity"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/internal/screener/service"
	"golang-idx-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ParamsHandler handles scanner parameter requests.
type ParamsHandler struct {
	paramsService service.ParamsService
	logger        *logger.Logger
}

// NewParamsHandler creates a new ParamsHandler.
func NewParamsHandler(paramsService service.ParamsService, logger *logger.Logger) *ParamsHandler {
	return &ParamsHandler{paramsService: paramsService, logger: logger}
}

// RegisterRoutes registers the params routes to the Echo group.
func (h *ParamsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:mode", h.GetParams)
	g.GET("/:mode/defaults", h.GetDefaults)
	g.PATCH("/:mode", h.SaveParams)
}

// GetParams godoc
// @Summary Get the persisted params for a mode
// @Tags params
// @Produce json
// @Param mode path string true "BTST or BPJS"
// @Success 200 {object} entity.ScannerParams
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /screener/params/{mode} [get]
func (h *ParamsHandler) GetParams(c echo.Context) error {
	mode, err := entity.ParseMode(c.Param("mode"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: err.Error()})
	}

	params, err := h.paramsService.Load(c.Request().Context(), mode)
	if err != nil {
		h.logger.Error("Failed to load params", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to load params"})
	}

	return c.JSON(http.StatusOK, params)
}

// GetDefaults godoc
// @Summary Get the hardcoded default params for a mode
// @Tags params
// @Produce json
// @Param mode path string true "BTST or BPJS"
// @Success 200 {object} entity.ScannerParams
// @Failure 400 {object} dto.ErrorResponse
// @Router /screener/params/{mode}/defaults [get]
func (h *ParamsHandler) GetDefaults(c echo.Context) error {
	mode, err := entity.ParseMode(c.Param("mode"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, h.paramsService.GetDefaults(mode))
}

// SaveParams godoc
// @Summary Merge-patch the params for a mode
// @Description Only supplied fields replace stored values; the other mode is untouched. Field ranges are not validated.
// @Tags params
// @Accept json
// @Produce json
// @Param mode path string true "BTST or BPJS"
// @Param params body dto.ScannerParamsPatch true "Fields to update"
// @Success 200 {object} entity.ScannerParams
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /screener/params/{mode} [patch]
func (h *ParamsHandler) SaveParams(c echo.Context) error {
	mode, err := entity.ParseMode(c.Param("mode"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: err.Error()})
	}

	var patch dto.ScannerParamsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Ok: false, Error: "Invalid request payload"})
	}

	params, err := h.paramsService.Save(c.Request().Context(), mode, patch)
	if err != nil {
		h.logger.Error("Failed to save params", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Ok: false, Error: "Failed to save params"})
	}

	return c.JSON(http.StatusOK, params)
}
