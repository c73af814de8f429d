package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/middlewares"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
)

type ProfileController struct {
	Users *services.UserService
}

func NewProfileController(users *services.UserService) *ProfileController {
	return &ProfileController{Users: users}
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	user, err := pc.Users.GetProfile(c.Request.Context(), c.GetUint(middlewares.CtxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := pc.Users.UpdateProfile(c.Request.Context(), c.GetUint(middlewares.CtxUserID), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully", "user": user})
}
