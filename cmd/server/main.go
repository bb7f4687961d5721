package main

import (
	"log"

	"pulse/internal/api"
	"pulse/internal/repository"
	"pulse/internal/service"
	"pulse/pkg/config"
	"pulse/pkg/db"
	"pulse/pkg/logger"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	userRepo := repository.NewUserRepository(db.DB)
	groupRepo := repository.NewGroupRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)

	images, err := service.NewImageStore()
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	authService := service.NewAuthService(userRepo)
	postService := service.NewPostService(postRepo, groupRepo, images)
	commentService := service.NewCommentService(commentRepo)
	followService := service.NewFollowService(followRepo, postRepo)

	authHandler := api.NewAuthHandler(authService)
	postHandler := api.NewPostHandler(postRepo, groupRepo, userRepo, postService, commentService, followService)
	followHandler := api.NewFollowHandler(userRepo, followService)

	r := api.SetupRouter(userRepo, authHandler, postHandler, followHandler, images.BasePath())

	addr := config.GlobalConfig.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
