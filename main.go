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
	"github.com/kdcreatives/kdcreatives-backend/controllers"
	"github.com/kdcreatives/kdcreatives-backend/database"
	"github.com/kdcreatives/kdcreatives-backend/middleware"
	"github.com/kdcreatives/kdcreatives-backend/repository"
	"github.com/kdcreatives/kdcreatives-backend/services"
	"github.com/kdcreatives/kdcreatives-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	if err := utils.SeedAdminUser(ctx, database.OpenCollection("users")); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedServices(ctx, database.OpenCollection("services")); err != nil {
		log.Fatal(err)
	}

	notifier := services.NewEmailNotifierFromEnv(repository.NewUserDirectory())
	quotations := services.NewQuotationService(repository.NewQuotationStore(), repository.NewCatalog(), notifier)

	unsplash, err := services.NewUnsplashService(os.Getenv("UNSPLASH_ACCESS_KEY"), services.NewMemoryCache())
	if err != nil {
		log.Fatal(err)
	}

	imageValidator := utils.NewImageValidator()

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

	auth := r.Group("/auth")
	auth.POST("/register", middleware.AuthRateLimit(), controllers.Register())
	auth.POST("/login", middleware.AuthRateLimit(), controllers.Login())
	auth.POST("/refresh", controllers.Refresh())
	auth.POST("/logout", controllers.Logout())
	auth.GET("/me", middleware.AuthMiddleware(), controllers.Me())
	auth.POST("/me/password", middleware.AuthMiddleware(), controllers.ChangeMyPassword())

	r.GET("/services", controllers.GetServices())
	r.GET("/services/:id", controllers.GetService())

	r.GET("/unsplash/search", middleware.UnsplashRateLimit(), controllers.SearchUnsplash(unsplash))
	r.GET("/unsplash/random", middleware.UnsplashRateLimit(), controllers.RandomUnsplash(unsplash))

	// Guests and clients share the submission endpoint
	r.POST("/quotations", middleware.QuotationRateLimit(), middleware.OptionalAuth(), controllers.CreateQuotation(quotations))

	protected := r.Group("/quotations")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/my-quotations", controllers.GetMyQuotations(quotations))
		protected.GET("/:id", controllers.GetQuotation(quotations))
		protected.PUT("/:id", controllers.UpdateQuotation(quotations))
		protected.POST("/:id/images", controllers.AddQuotationImages(quotations))
		protected.DELETE("/:id/images", controllers.RemoveQuotationImages(quotations))
	}

	r.POST("/uploads/profile", middleware.AuthMiddleware(), middleware.UploadRateLimit(), controllers.UploadProfilePicture(imageValidator))

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/quotations", controllers.GetAllQuotations(quotations))
		admin.DELETE("/quotations/:id", controllers.DeleteQuotation(quotations))

		admin.POST("/services", controllers.CreateService())
		admin.PATCH("/services/:id", controllers.UpdateService())
		admin.DELETE("/services/:id", controllers.DeleteService())
		admin.POST("/uploads/services/:id", middleware.UploadRateLimit(), controllers.UploadServiceImage(imageValidator))
	}

	// Server listens on 0.0.0.0:8080 unless PORT is set
	r.Run()
}
