package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/middlewares"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
)

// AdminController serves the /admin group, which is mounted behind
// RequireAdmin.
type AdminController struct {
	Admin *services.AdminService
}

func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{Admin: admin}
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	d, err := ac.Admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (ac *AdminController) GetAppliance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := ac.Admin.Appliance(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AdminController) DeleteAppliance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ac.Admin.DeleteAppliance(c.Request.Context(), c.GetUint(middlewares.CtxUserID), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appliance deleted"})
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ac.Admin.DeleteUser(c.Request.Context(), c.GetUint(middlewares.CtxUserID), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
