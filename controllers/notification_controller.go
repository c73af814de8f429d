package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/middlewares"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
)

type NotificationController struct {
	Notifications *services.NotificationService
}

func NewNotificationController(n *services.NotificationService) *NotificationController {
	return &NotificationController{Notifications: n}
}

// Check is the client poll: it re-evaluates the caller's appliances and
// returns the per-appliance results. Notifications go out over the push
// channel as a side effect. Appliances whose status could not be saved are
// still listed, flagged save_failed.
func (nc *NotificationController) Check(c *gin.Context) {
	evs, err := nc.Notifications.Check(c.Request.Context(), c.GetUint(middlewares.CtxUserID))
	if err != nil && evs == nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"evaluations": evs}
	if err != nil {
		resp["error"] = "some warranty statuses could not be saved"
	}
	c.JSON(http.StatusOK, resp)
}

func (nc *NotificationController) List(c *gin.Context) {
	alerts, err := nc.Notifications.History(c.Request.Context(), c.GetUint(middlewares.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := nc.Notifications.MarkRead(c.Request.Context(), c.GetUint(middlewares.CtxUserID), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

type toggleReq struct {
	Enabled bool `json:"enabled"`
}

// Toggle enables or disables mobile push on all of the caller's devices.
func (nc *NotificationController) Toggle(c *gin.Context) {
	var req toggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := nc.Notifications.SetPushEnabled(c.Request.Context(), c.GetUint(middlewares.CtxUserID), req.Enabled); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications updated",
		"enabled": req.Enabled,
	})
}
