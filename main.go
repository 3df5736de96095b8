package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"digi-hr-backend/config"
	_ "digi-hr-backend/docs"
	"digi-hr-backend/pkg/paseto"
	"digi-hr-backend/repository"
	"digi-hr-backend/router"
	"digi-hr-backend/seeder"
	_ "time/tzdata"
)

// @title Digi HR Backend API
// @version 1.0
// @description API internal HR: absensi check-in/check-out, pengajuan cuti, task karyawan, dan manajemen user
//
// @contact.name API Support
// @contact.email support@digi-hr.local
//
// @host localhost:3000
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Users
// @tag.description User profile endpoints
//
// @tag.name Admin
// @tag.description Admin only endpoints
//
// @tag.name Attendance
// @tag.description Attendance check-in/check-out endpoints
//
// @tag.name Leave Request
// @tag.description Leave request endpoints
//
// @tag.name Tasks
// @tag.description Per-user task endpoints
func main() {
	cfg := config.LoadConfig()

	client, err := config.ConnectMongo(context.Background(), cfg.MONGOSTRING)
	if err != nil {
		log.Fatalf("Gagal koneksi ke MongoDB: %v", err)
	}
	defer config.DisconnectMongo(client)

	db := client.Database(cfg.DBName)
	if err := config.InitIndexes(context.Background(), db); err != nil {
		log.Fatalf("Gagal inisialisasi index: %v", err)
	}

	seeder.SeedAdmin(repository.NewUserRepository(db))

	maker, err := paseto.NewMaker(cfg.PASETOSecret)
	if err != nil {
		log.Fatalf("Gagal inisialisasi PASETO maker: %v", err)
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app, db, maker, cfg)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
