package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"contest-scoring-system/handlers"
	"contest-scoring-system/middleware"
	"contest-scoring-system/models"
	"contest-scoring-system/services"
	"contest-scoring-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, Cache-Control",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
	app.Use(middleware.RequestLogger())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// TranslateError turns unique-constraint violations into
	// gorm.ErrDuplicatedKey, which the ledger relies on for duplicate
	// validation detection.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Participant{},
		&models.Contest{},
		&models.Bloc{},
		&models.Zone{},
		&models.Validation{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  Poster uploads disabled: %v", err)
	}

	notifier := services.NewRankingsNotifier()
	participantService := services.NewParticipantService(db, notifier)
	contestService := services.NewContestService(db, notifier)
	blocService := services.NewBlocService(db, notifier)
	validationService := services.NewValidationService(db, notifier)
	rankingService := services.NewRankingService(db)

	if strings.ToLower(os.Getenv("CONTEST_AUTO_CLOSE")) == "true" {
		contestService.StartAutoCloseScheduler()
		log.Println("✅ Contest auto-close scheduler running (every 1m)")
	}

	handlers.SetupParticipantRoutes(app, participantService)
	handlers.SetupContestRoutes(app, contestService)
	handlers.SetupBlocRoutes(app, blocService)
	handlers.SetupValidationRoutes(app, validationService)
	handlers.SetupRankingRoutes(app, rankingService, notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
