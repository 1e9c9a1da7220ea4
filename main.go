package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shaadicloset/shaadibackend/controllers"
	"github.com/shaadicloset/shaadibackend/database"
	"github.com/shaadicloset/shaadibackend/middleware"
	"github.com/shaadicloset/shaadibackend/storage"
	"github.com/shaadicloset/shaadibackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()

	db, err := database.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedAdminUser(ctx, db.Collection("users")); err != nil {
		log.Fatal(err)
	}

	bucket, err := storage.NewBucketFromEnv(ctx)
	if err != nil {
		log.Fatal(err)
	}

	app := controllers.NewApp(db, bucket, utils.NewMediaValidator())

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.POST("/auth/login", app.Login())
	r.POST("/auth/refresh", app.Refresh())

	r.GET("/collections", app.BrowseCollections())
	r.GET("/collections/:id", app.GetCollection())
	r.GET("/meta-options", app.GetMetaOptions())
	r.GET("/content/:kind", app.ListContent())

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/collections", app.AdminListCollections())
		admin.POST("/collections", app.CreateCollection())
		admin.PATCH("/collections/:id", app.UpdateCollection())
		admin.DELETE("/collections/:id", app.DeleteCollection())

		admin.POST("/meta-options", app.AddMetaOption())
		admin.DELETE("/meta-options/:id", app.DeleteMetaOption())

		admin.POST("/content/:kind", app.CreateContent())
		admin.PATCH("/content/:kind/:id", app.UpdateContent())
		admin.DELETE("/content/:kind/:id", app.DeleteContent())

		admin.POST("/users", app.CreateUser())
		admin.POST("/users/me/password", app.ChangeMyPassword())
	}

	// Server listens on 0.0.0.0:8080 by default (PORT overrides)
	r.Run()
}
