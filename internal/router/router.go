package router

import (
	"github.com/gin-gonic/gin"

	"smartpantry/internal/handler"
	"smartpantry/internal/middleware"
	"smartpantry/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	fileH *handler.FileHandler,
	receiptH *handler.ReceiptHandler,
	nutritionH *handler.NutritionHandler,
	insightsH *handler.InsightsHandler,
	riskH *handler.RiskHandler,
	pricingH *handler.PricingHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.POST("/reset-password", authH.ResetPassword)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/me", authH.Me)
	protected.POST("/auth/change-password", authH.ChangePassword)

	// Receipt image routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", fileH.Delete)

	// Receipt routes
	receipts := protected.Group("/receipts")
	receipts.POST("/scan", receiptH.Scan)
	receipts.POST("/from-upload", receiptH.CreateFromUpload)
	receipts.POST("", receiptH.Create)
	receipts.GET("", receiptH.List)
	receipts.GET("/export", receiptH.Export)
	receipts.GET("/:id", receiptH.GetByID)
	receipts.GET("/:id/items", receiptH.Items)
	receipts.GET("/:id/image", receiptH.ImageURL)
	receipts.DELETE("/:id", receiptH.Delete)

	// Nutrition log routes
	nutrition := protected.Group("/nutrition")
	nutrition.POST("", nutritionH.Add)
	nutrition.GET("", nutritionH.List)
	nutrition.PUT("/:id", nutritionH.Update)
	nutrition.DELETE("/:id", nutritionH.Delete)

	// Insights
	insights := protected.Group("/insights")
	insights.GET("/daily/:date", insightsH.Daily)
	insights.GET("/today", insightsH.Today)
	insights.GET("/weekly", insightsH.Weekly)
	insights.GET("/analyze", insightsH.Analyze)

	protected.POST("/risk-score", riskH.Score)
	protected.GET("/prices/compare", pricingH.Compare)

	return r
}
