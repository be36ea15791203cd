package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/kenziahmos000/web-project-new/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/kenziahmos000/web-project-new/internal/auth"
	"github.com/kenziahmos000/web-project-new/internal/cache"
	"github.com/kenziahmos000/web-project-new/internal/config"
	"github.com/kenziahmos000/web-project-new/internal/db"
	"github.com/kenziahmos000/web-project-new/internal/handler"
	"github.com/kenziahmos000/web-project-new/internal/model"
	"github.com/kenziahmos000/web-project-new/internal/repository"
	"github.com/kenziahmos000/web-project-new/internal/router"
	"github.com/kenziahmos000/web-project-new/internal/service"
	"github.com/kenziahmos000/web-project-new/internal/storage"
)

// @title Recipe Share API
// @version 1.0
// @description Recipe sharing API with JWT authentication, owned recipes, favorites and image uploads.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Favorite{},
			&model.Recipe{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Recipe{},
		&model.Favorite{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	images, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	recipeService := service.NewRecipeService(recipeRepo, favoriteRepo, images, cacheClient)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		recipeHandler,
		favoriteHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
