package main

import (
	"flag"
	"log/slog"
	"os"

	"ai-diary/internal/ai"
	"ai-diary/internal/config"
	"ai-diary/internal/handler"
	"ai-diary/internal/logger"
	"ai-diary/internal/middleware"
	"ai-diary/internal/model"
	"ai-diary/internal/orchestrator"
	"ai-diary/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	middleware.SetSecret(cfg.JWT.Secret)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.Account{}, &model.UserProfile{}, &model.DiaryEntry{}); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	if cfg.Gemini.APIKey == "" {
		slog.Warn("gemini api key not set, feedback calls will fail")
	}

	aiSvc := ai.NewService(ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model))
	diarySvc := service.NewDiaryService(db)
	profileSvc := service.NewProfileService(db)
	authSvc := service.NewAuthService(db)
	orch := orchestrator.New(aiSvc, diarySvc, profileSvc)

	authH := handler.NewAuthHandler(authSvc)
	diaryH := handler.NewDiaryHandler(orch, diarySvc, authSvc)
	profileH := handler.NewProfileHandler(profileSvc, diarySvc, authSvc)
	aiH := handler.NewAIHandler(aiSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/api/signup", authH.Signup)
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", middleware.JWTAuth())
	api.POST("/entries", diaryH.Submit)
	api.GET("/entries", diaryH.List)
	api.DELETE("/entries/:id", diaryH.Delete)
	api.DELETE("/entries", diaryH.DeleteAll)
	api.GET("/streak", diaryH.Streak)
	api.GET("/profile", profileH.Get)
	api.PUT("/profile", profileH.Update)
	api.DELETE("/account", profileH.DeleteAccount)
	api.POST("/ai/feedback", aiH.Feedback)
	api.POST("/ai/milestone", aiH.Milestone)
	api.POST("/ai/weekly", aiH.Weekly)
	api.POST("/ai/monthly", aiH.Monthly)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
