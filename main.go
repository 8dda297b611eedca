package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Kapilpaliwal42/Saas-project/config"
	"github.com/Kapilpaliwal42/Saas-project/handlers"
	"github.com/Kapilpaliwal42/Saas-project/media"
	"github.com/Kapilpaliwal42/Saas-project/store"
)

func main() {
	// Production injects env vars through infra; .env is for dev.
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			logrus.Info("no .env file found, using process environment")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	videos, err := store.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("Failed to open database: %v", err)
	}
	defer videos.Close()
	if err := videos.Init(); err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	mediaService, err := buildMediaService(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize media backend: %v", err)
	}

	router := gin.Default()
	handler := handlers.New(cfg, mediaService, videos)
	setRoutes(router, handler, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.Infof("Server starting on port :%s (media backend: %s, database: %s)",
			cfg.Port, cfg.MediaBackend, cfg.DatabaseDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("server shutdown error: %v", err)
	}
}

func buildMediaService(cfg *config.Config) (media.Service, error) {
	if cfg.MediaBackend == "cloudinary" {
		svc, err := media.NewCloudinaryService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}

	var blobs media.BlobStore
	var err error
	if cfg.StorageType == "s3" {
		blobs, err = media.NewS3Store(cfg.AWSRegion, cfg.AWSS3Bucket,
			os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"))
	} else {
		blobs, err = media.NewDiskStore(cfg.MediaDir, cfg.BaseURL)
	}
	if err != nil {
		return nil, err
	}
	return media.NewLocalService(blobs, cfg.BaseURL), nil
}

func setRoutes(router *gin.Engine, handler *handlers.Handler, cfg *config.Config) {
	router.GET("/probe", handler.HandleProbe)
	router.GET("/api/video", handler.HandleVideoList)

	authed := router.Group("/", handlers.RequireAuth(cfg.AuthSecret))
	authed.POST("/api/image-upload", handler.HandleImageUpload)
	authed.DELETE("/api/image-upload/delete", handler.HandleImageDelete)
	authed.POST("/api/video-upload", handler.HandleVideoUpload)
	authed.GET("/api/image-transform", handler.HandleTransformURL)

	if cfg.MediaBackend == "local" {
		router.GET("/media/file/*key", handler.HandleMediaFile)
		router.GET("/media/render", handler.HandleMediaRender)
	}
}
