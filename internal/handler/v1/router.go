package v1

import (
	"net/http"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/pkg/auth"
	"github.com/carebridge/hms/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RouterDeps struct {
	Auth        *AuthHandler
	Admin       *AdminHandler
	Directory   *DirectoryHandler
	Appointment *AppointmentHandler
	Billing     *BillingHandler
	Contact     *ContactHandler
	Dashboard   *DashboardHandler

	JWTManager *auth.JWTManager
	Collector  *metrics.Collector
	DB         *gorm.DB
	Log        *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Log))
	router.Use(Observe(deps.Collector))

	router.GET("/healthz", healthz(deps.DB))
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := router.Group("/api/v1")

	// Open endpoints.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
		authGroup.POST("/refresh", deps.Auth.Refresh)
	}
	api.POST("/contact-queries", deps.Contact.Submit)

	// Everything below requires a valid access token.
	authed := api.Group("")
	authed.Use(Authenticate(deps.JWTManager))

	authed.GET("/doctors", deps.Directory.ListDoctors)
	authed.GET("/doctors/specializations", deps.Directory.Specializations)

	appointments := authed.Group("/appointments")
	{
		appointments.GET("", deps.Appointment.List)
		appointments.POST("", RequireRole(domain.RolePatient), deps.Appointment.Book)
		appointments.GET("/:id", deps.Appointment.Get)
		appointments.POST("/:id/confirm", RequireRole(domain.RoleDoctor, domain.RoleAdmin), deps.Appointment.Confirm)
		appointments.POST("/:id/cancel", deps.Appointment.Cancel)

		appointments.PUT("/:id/invoice", RequireRole(domain.RoleDoctor, domain.RoleAdmin), deps.Appointment.IssueInvoice)
		appointments.GET("/:id/invoice", deps.Appointment.GetInvoice)
		appointments.POST("/:id/invoice/pay", RequireRole(domain.RolePatient), deps.Appointment.PayInvoice)

		appointments.PUT("/:id/prescription", RequireRole(domain.RoleDoctor, domain.RoleAdmin), deps.Appointment.UpsertPrescription)
		appointments.GET("/:id/prescription", deps.Appointment.GetPrescription)
	}

	authed.GET("/invoices", deps.Billing.ListInvoices)
	authed.GET("/invoices/revenue", RequireRole(domain.RoleAdmin), deps.Billing.Revenue)
	authed.GET("/prescriptions", deps.Billing.ListPrescriptions)

	admin := authed.Group("/admin")
	admin.Use(RequireRole(domain.RoleAdmin))
	{
		admin.GET("/dashboard", deps.Dashboard.Stats)

		admin.GET("/doctors", deps.Admin.ListDoctors)
		admin.PUT("/doctors/:id", deps.Admin.UpdateDoctor)
		admin.DELETE("/doctors/:id", deps.Admin.DeleteDoctor)
		admin.POST("/doctors/:id/approve", deps.Admin.ApproveDoctor)
		admin.POST("/doctors/:id/reject", deps.Admin.RejectDoctor)

		admin.GET("/patients", deps.Admin.ListPatients)
		admin.PUT("/patients/:id", deps.Admin.UpdatePatient)
		admin.DELETE("/patients/:id", deps.Admin.DeletePatient)

		admin.GET("/contact-queries", deps.Contact.List)
		admin.GET("/contact-queries/:id", deps.Contact.Get)
		admin.POST("/contact-queries/:id/reply", deps.Contact.Reply)
	}

	return router
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
