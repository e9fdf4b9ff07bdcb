package handler

import (
	"net/http"

	"gymbeauty/internal/config"
	"gymbeauty/internal/middleware"
	"gymbeauty/internal/syncer"
	ws "gymbeauty/internal/websocket"
	"gymbeauty/pkg/response"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncer   *syncer.Syncer
	firebase config.FirebaseConfig
	hub      *ws.Hub
}

// NewSyncHandler wires the sync endpoints. syncer is nil when the mirror
// store is not configured; the endpoints then report what is missing.
func NewSyncHandler(s *syncer.Syncer, firebase config.FirebaseConfig, hub *ws.Hub) *SyncHandler {
	return &SyncHandler{syncer: s, firebase: firebase, hub: hub}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	sync := router.Group("/sync", middleware.RequireRole("admin"))
	{
		sync.POST("", h.Run)
		sync.GET("/status", h.Status)
		sync.GET("/test", h.Test)
	}
}

func (h *SyncHandler) notConfigured(c *gin.Context) bool {
	if h.syncer != nil {
		return false
	}
	c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable,
		"Mirror store is not configured; missing: "+joinMissing(h.firebase)))
	return true
}

func joinMissing(f config.FirebaseConfig) string {
	missing := f.MissingFields()
	if len(missing) == 0 {
		return "credentials could not be loaded"
	}
	out := missing[0]
	for _, m := range missing[1:] {
		out += ", " + m
	}
	return out
}

// Run pushes every table to the mirror store
// @Summary      Run full sync
// @Description  Mirrors all tables in 500-document batches. Row failures are reported per table; the run always returns 200 with a success flag.
// @Tags         sync
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=syncer.Result}
// @Failure      503  {object}  response.Response  "Mirror store not configured"
// @Router       /api/sync [post]
func (h *SyncHandler) Run(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	result := h.syncer.SyncAll(c.Request.Context())
	if h.hub != nil {
		h.hub.BroadcastEvent(ws.EventSyncCompleted, result)
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Status compares local and mirrored row counts
// @Summary      Sync status
// @Tags         sync
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]syncer.TableStatus}
// @Failure      503  {object}  response.Response
// @Router       /api/sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	status, err := h.syncer.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// Test checks mirror store connectivity
// @Summary      Test mirror connection
// @Tags         sync
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /api/sync/test [get]
func (h *SyncHandler) Test(c *gin.Context) {
	if h.notConfigured(c) {
		return
	}
	if err := h.syncer.Test(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, "Mirror store unreachable: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Mirror store reachable"))
}
