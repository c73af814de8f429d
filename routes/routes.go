package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/controllers"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/middlewares"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

// Deps is everything the router needs to build its controllers.
type Deps struct {
	Log           *zap.Logger
	JWT           *utils.JWTManager
	Users         middlewares.UserLookup
	Auth          *services.AuthService
	Profile       *services.UserService
	Appliances    *services.ApplianceService
	Records       *services.ServiceRecordService
	Notifications *services.NotificationService
	Push          *services.PushService
	Admin         *services.AdminService
	Hub           *services.RealtimeHub
	// UploadDir is served under /uploads when receipts live on local disk.
	UploadDir string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequestLogger(d.Log), middlewares.Recovery(d.Log))
	r.MaxMultipartMemory = services.MaxReceiptBytes + 1<<20

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	authCtl := controllers.NewAuthController(d.Auth)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(d.JWT, d.Users))

	profile := controllers.NewProfileController(d.Profile)
	protected.GET("/profile", profile.GetProfile)
	protected.PUT("/profile", profile.UpdateProfile)

	appl := controllers.NewApplianceController(d.Appliances)
	records := controllers.NewServiceRecordController(d.Records)
	appliances := protected.Group("/appliances")
	{
		appliances.GET("", appl.List)
		appliances.POST("", appl.Create)
		appliances.GET("/expiring", appl.Expiring)
		appliances.GET("/expired", appl.Expired)
		appliances.GET("/:id", appl.Get)
		appliances.PUT("/:id", appl.Update)
		appliances.DELETE("/:id", appl.Delete)

		appliances.GET("/:id/service-records", records.List)
		appliances.POST("/:id/service-records", records.Create)
		appliances.GET("/:id/service-records/:recordID", records.Get)
		appliances.PUT("/:id/service-records/:recordID", records.Update)
		appliances.DELETE("/:id/service-records/:recordID", records.Delete)
	}

	notif := controllers.NewNotificationController(d.Notifications)
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notif.List)
		notifications.POST("/check", notif.Check)
		notifications.POST("/toggle", notif.Toggle)
		notifications.POST("/:id/read", notif.MarkRead)
	}

	devices := controllers.NewDeviceController(d.Push)
	protected.POST("/devices", devices.Register)

	rt := controllers.NewRealtimeController(d.Hub)
	protected.GET("/ws/notifications", rt.NotificationsWS)

	adminCtl := controllers.NewAdminController(d.Admin)
	admin := protected.Group("/admin", middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", adminCtl.Dashboard)
		admin.GET("/appliances/:id", adminCtl.GetAppliance)
		admin.DELETE("/appliances/:id", adminCtl.DeleteAppliance)
		admin.DELETE("/users/:id", adminCtl.DeleteUser)
	}

	return r
}
