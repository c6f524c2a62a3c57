package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soraien/raidhall/config"
	"github.com/soraien/raidhall/controllers"
	"github.com/soraien/raidhall/hub"
	"github.com/soraien/raidhall/middleware"
	"github.com/soraien/raidhall/roster"
	"github.com/soraien/raidhall/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, h *hub.Hub) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// File-based zap access log instead of gin's console logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.File("./static/index.html")
	})
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	postController := controllers.NewPostController(db, h)
	memberController := controllers.NewMemberController(db)
	settingsController := controllers.NewSettingsController(db)
	raidController := controllers.NewRaidController(roster.NewManager(db, utils.Logger))
	uploadController := controllers.NewUploadController(db)
	wsHandler := hub.NewHandler(h, cfg.AllowedOrigins, utils.Logger)

	r.GET("/ws", wsHandler.ServeWS)

	api := r.Group("/api")

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id/comments", postController.ListComments)
	api.GET("/settings", settingsController.GetSettings)
	api.GET("/site", settingsController.GetSite)
	api.GET("/members", memberController.ListMembers)
	api.GET("/raid-schedules", raidController.ListSchedules)

	writes := api.Group("")
	writes.Use(middleware.RateLimitMiddleware())
	writes.POST("/login", memberController.Login)
	writes.POST("/posts", postController.CreatePost)
	writes.DELETE("/posts/:id", postController.DeletePost)
	writes.POST("/posts/:id/comments", postController.CreateComment)
	writes.POST("/settings", settingsController.SetSettings)
	writes.PATCH("/members/:id", memberController.UpdateMember)
	writes.DELETE("/members/:id", memberController.DeleteMember)
	writes.POST("/raid-schedules", raidController.CreateSchedule)
	writes.DELETE("/raid-schedules/:id", raidController.DeleteSchedule)
	writes.POST("/raid-schedules/:id/participants", raidController.AddParticipant)
	writes.DELETE("/raid-participants/:id", raidController.RemoveParticipant)
	writes.POST("/upload", uploadController.UploadImage)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		if strings.HasPrefix(path, "/static/") {
			ctx.JSON(http.StatusNotFound, gin.H{"message": "static asset not found"})
			return
		}
		// everything else falls back to the SPA entry
		ctx.Status(http.StatusOK)
		ctx.File("./static/index.html")
	})

	return r
}
