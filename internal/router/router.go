package router

import (
	"net/http"
	"time"

	"github.com/Ankit-repo-24/BahhiKhata/internal/config"
	"github.com/Ankit-repo-24/BahhiKhata/internal/handler"
	"github.com/Ankit-repo-24/BahhiKhata/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the API route table.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bahhi-Khata API is running")
	})

	// ====== API ======
	api := r.Group("/api")
	api.Use(middleware.QueryTimeout(time.Duration(cfg.Database.QueryTimeoutSeconds) * time.Second))

	// registration and login need no token
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything else requires a bearer token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	protected.GET("/me", handler.GetMe(db))
	protected.GET("/categories", handler.Categories)

	expenseHandler := handler.NewExpenseHandler(db)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)
	protected.POST("/expenses/import", expenseHandler.ImportCSV)

	statsHandler := handler.NewStatsHandler(db)
	protected.GET("/stats/monthly", statsHandler.Monthly)
	protected.GET("/stats/by-category", statsHandler.ByCategory)
	protected.GET("/stats/daily-average", statsHandler.DailyAverage)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
