package http

import (
	"errors"
	"net/http"
	"presencewatch/internal/core/domain"
	coreerrors "presencewatch/internal/core/errors"
	"presencewatch/internal/core/ports"
	"presencewatch/pkg/utils"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultDays = 7

// rangeNames are the dashboard's range selector values.
var rangeNames = map[string]int{
	"week":    7,
	"month":   30,
	"quarter": 90,
	"year":    365,
}

type Handler struct {
	presenceSvc ports.PresenceService
	logger      *zap.Logger
}

// NewHandler constructs a handler that depends on the PresenceService interface.
func NewHandler(svc ports.PresenceService, logger *zap.Logger) *Handler {
	return &Handler{presenceSvc: svc, logger: logger}
}

// PostTransition godoc
// @Summary Report a presence transition
// @Description Record that a device went online or offline at the given timestamp.
// @Tags devices
// @Accept json
// @Produce json
// @Param device_id path string true "Device MAC address"
// @Param request body TransitionRequest true "Transition payload"
// @Success 204 "no content"
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_id}/transitions [post]
func (h *Handler) PostTransition(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !utils.IsMAC(deviceID) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "Invalid device ID"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Msg: "invalid payload: " + err.Error(),
		})
		return
	}

	state, err := domain.ParseState(req.State)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "invalid payload: " + err.Error()})
		return
	}

	if err := h.presenceSvc.ReportTransition(deviceID, req.Timestamp, state); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetDevices godoc
// @Summary List devices
// @Description Return known devices with their current presence status.
// @Tags devices
// @Produce json
// @Param category query string false "Device category filter, e.g. router or switch"
// @Success 200 {object} DevicesResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices [get]
func (h *Handler) GetDevices(c *gin.Context) {
	devices, err := h.presenceSvc.GetDevices(c.Query("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := DevicesResponse{Devices: make([]DeviceResponse, len(devices))}
	for i, d := range devices {
		resp.Devices[i] = newDeviceResponse(d)
	}
	c.JSON(http.StatusOK, resp)
}

// GetStats godoc
// @Summary Per-day presence statistics of a device
// @Description Return online hours and offline interval counts for the last N calendar days.
// @Tags devices
// @Produce json
// @Param device_id path string true "Device MAC address"
// @Param days query int false "Number of days, today included" default(7)
// @Success 200 {object} PersonStatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_id}/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !utils.IsMAC(deviceID) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "Invalid device ID"})
		return
	}

	days, ok := queryInt(c, "days", defaultDays)
	if !ok {
		return
	}

	stats, err := h.presenceSvc.GetPersonStats(deviceID, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	mac, _ := utils.NormalizeMAC(deviceID)
	c.JSON(http.StatusOK, newPersonStatsResponse(mac, stats))
}

// GetSessions godoc
// @Summary Online sessions of a device
// @Description Return the reconstructed online sessions touching the last N calendar days.
// @Tags devices
// @Produce json
// @Param device_id path string true "Device MAC address"
// @Param days query int false "Number of days, today included" default(7)
// @Success 200 {object} SessionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /devices/{device_id}/sessions [get]
func (h *Handler) GetSessions(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !utils.IsMAC(deviceID) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "Invalid device ID"})
		return
	}

	days, ok := queryInt(c, "days", defaultDays)
	if !ok {
		return
	}

	sessions, err := h.presenceSvc.GetSessions(deviceID, days)
	if err != nil {
		h.writeError(c, err)
		return
	}

	mac, _ := utils.NormalizeMAC(deviceID)
	resp := SessionsResponse{DeviceID: mac, Sessions: make([]SessionResponse, len(sessions))}
	for i, s := range sessions {
		resp.Sessions[i] = newSessionResponse(s)
	}
	c.JSON(http.StatusOK, resp)
}

// GetHistory godoc
// @Summary Fleet online history
// @Description Number of devices online sampled at the end of each bucket. The bucket size follows the range: up to 7 days hourly, up to 30 daily, up to 90 weekly, monthly beyond (configurable).
// @Tags fleet
// @Produce json
// @Param range_days query int false "Range in days" default(7)
// @Param range query string false "Named range: week, month, quarter or year"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	rangeDays := defaultDays
	if name := c.Query("range"); name != "" {
		days, ok := rangeNames[name]
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "unknown range: " + name})
			return
		}
		rangeDays = days
	} else {
		days, ok := queryInt(c, "range_days", defaultDays)
		if !ok {
			return
		}
		rangeDays = days
	}

	hist, err := h.presenceSvc.GetHistorical(rangeDays)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := HistoryResponse{
		RangeDays:   rangeDays,
		Granularity: string(hist.Granularity),
		Points:      make([]HistoricalPointResponse, len(hist.Points)),
	}
	for i, p := range hist.Points {
		resp.Points[i] = HistoricalPointResponse{
			BucketStart: p.BucketStart,
			BucketLabel: p.BucketLabel,
			Count:       p.Count,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, key string, defaultValue int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: "invalid " + key + ": " + raw})
		return 0, false
	}
	return n, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, coreerrors.ErrInvalidRange),
		errors.Is(err, coreerrors.ErrInvalidDeviceID),
		errors.Is(err, coreerrors.ErrInvalidState),
		errors.Is(err, coreerrors.ErrInvalidGranularity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Msg: err.Error()})
	case errors.Is(err, coreerrors.ErrOutOfOrder):
		c.JSON(http.StatusConflict, ErrorResponse{Msg: err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Msg: "internal error"})
	}
}
