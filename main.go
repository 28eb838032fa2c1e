package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/DronKashyap/DK-PropertyListings/internal/auth"
	"github.com/DronKashyap/DK-PropertyListings/internal/config"
	"github.com/DronKashyap/DK-PropertyListings/internal/handler"
	"github.com/DronKashyap/DK-PropertyListings/internal/middleware"
	mongoclient "github.com/DronKashyap/DK-PropertyListings/internal/mongo"
	"github.com/DronKashyap/DK-PropertyListings/internal/repository"
	"github.com/DronKashyap/DK-PropertyListings/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}

	mc, err := mongoclient.NewClient(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}

	users := repository.NewUserRepository(db)
	listings := repository.NewListingRepository(db)
	photos := repository.NewPhotoRepository(mc, cfg.MongoDB)

	access := service.NewListingAccess(listings)
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	authHandler := &handler.AuthHandler{Users: users, Issuer: issuer}
	listingHandler := &handler.ListingHandler{Repo: listings, Access: access}
	photoHandler := &handler.PhotoHandler{Photos: photos, Listings: listings, Access: access}

	r := gin.Default()

	// Open routes (no token) and principal-scoped routes (bearer required).
	public := r.Group("/")
	protected := r.Group("/")
	protected.Use(middleware.RequireAuth(verifier))

	authHandler.RegisterRoutes(public, protected)
	listingHandler.RegisterRoutes(public, protected)
	photoHandler.RegisterRoutes(public, protected)

	log.Printf("Property listing service running on :%s …", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
