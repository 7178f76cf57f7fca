package handlers

import (
	"net/http"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusSuccess = "success"

	errGetStatus      = "failed to sample status"
	errListDevices    = "failed to list devices"
	errReadEnv        = "failed to read environment"
	errSafetySnapshot = "failed to load safety snapshot"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// timestamp renders the response time as local ISO-8601.
func timestamp() string {
	return time.Now().Format(time.RFC3339Nano)
}

// controlRequest is the /api/control payload. Missing fields decode as "".
type controlRequest struct {
	Action string `json:"action"`
	Device string `json:"device"`
	Value  any    `json:"value,omitempty"`
}

// ControlRequest is an exported model for Swagger docs of the control payload.
type ControlRequest struct {
	// Action to perform. Known: power_on, power_off, reset, calibrate
	Action string `json:"action" example:"power_on"`
	// Target device: all, main, module1, module2, module3 or any other name
	Device string `json:"device" example:"all"`
	// Optional value, recorded with the event
	Value any `json:"value,omitempty"`
}

// StatusResponse documents GET /api/status.
type StatusResponse struct {
	Status    string              `json:"status" example:"success"`
	Timestamp string              `json:"timestamp"`
	Data      models.DeviceStatus `json:"data"`
}

// ControlResponse documents POST /api/control.
type ControlResponse struct {
	Status       string              `json:"status" example:"success"`
	Message      string              `json:"message" example:"所有电源已开启"`
	Timestamp    string              `json:"timestamp"`
	DeviceStatus models.DeviceStatus `json:"device_status"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Panel status
// @Description  Applies sensor jitter to temperature and humidity, then returns the full device status.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Status.Sample(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStatus, "status_sample_failed", err)
		return
	}
	c.JSON(http.StatusOK, StatusResponse{
		Status:    statusSuccess,
		Timestamp: timestamp(),
		Data:      st,
	})
}

// @Summary      Device list
// @Description  Twelve freshly randomized bench devices.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, data{devices,total,online}"
// @Failure      500  {object}  map[string]string
// @Router       /api/devices [get]
func (h *Handler) getDevices(c *gin.Context) {
	list, err := h.services.Devices.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListDevices, "devices_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   list,
	})
}

// @Summary      Environment reading
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, data"
// @Failure      500  {object}  map[string]string
// @Router       /api/environment [get]
func (h *Handler) getEnvironment(c *gin.Context) {
	env, err := h.services.Environment.Read(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errReadEnv, "environment_read_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   env,
	})
}

// @Summary      Safety report
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, data"
// @Failure      500  {object}  map[string]string
// @Router       /api/safety [get]
func (h *Handler) getSafety(c *gin.Context) {
	snap, err := h.services.Safety.Snapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSafetySnapshot, "safety_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"data":   snap,
	})
}

// @Summary      Control action
// @Description  power_on/power_off switch one device or "all"; reset and calibrate only confirm. Replies after the simulated hardware delay.
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      ControlRequest  true  "Control payload"
// @Success      200   {object}  ControlResponse
// @Failure      500   {object}  map[string]string
// @Router       /api/control [post]
func (h *Handler) control(c *gin.Context) {
	var req controlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, err.Error(), "control_bad_body", err, "path", c.Request.URL.Path)
		return
	}
	if h.log != nil {
		h.log.Infow("control_request", "action", req.Action, "device", req.Device, "value", req.Value)
	}

	res, err := h.services.Control.Execute(c.Request.Context(), service.ControlParams{
		Action: req.Action,
		Device: req.Device,
		Value:  req.Value,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, err.Error(), "control_failed", err,
			"action", req.Action, "device", req.Device)
		return
	}
	// PureJSON keeps device names echoed in the message unescaped.
	c.PureJSON(http.StatusOK, ControlResponse{
		Status:       statusSuccess,
		Message:      res.Message,
		Timestamp:    timestamp(),
		DeviceStatus: res.Status,
	})
}
