package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"digi-hr-backend/config"
	"digi-hr-backend/config/middleware"
	_ "digi-hr-backend/docs"
	"digi-hr-backend/handlers"
	"digi-hr-backend/pkg/paseto"
	"digi-hr-backend/repository"
)

func SetupRoutes(app *fiber.App, db *mongo.Database, maker *paseto.Maker, cfg *config.AppConfig) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	// Inisialisasi Repositories
	userRepo := repository.NewUserRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	leaveRepo := repository.NewLeaveRequestRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(userRepo, maker)
	userHandler := handlers.NewUserHandler(userRepo, attendanceRepo, leaveRepo, taskRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo)
	leaveHandler := handlers.NewLeaveRequestHandler(leaveRepo, userRepo, cfg.UploadDir)
	taskHandler := handlers.NewTaskHandler(taskRepo)

	auth := middleware.AuthMiddleware(maker)
	admin := middleware.AdminMiddleware()

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Digi HR Backend API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// Authentication routes
	api.Post("/login", authHandler.Login)
	api.Post("/logout", auth, authHandler.Logout)

	// User routes
	userGroup := api.Group("/users", auth)
	userGroup.Get("/me", userHandler.GetMe)
	userGroup.Post("/change-password", authHandler.ChangePassword)

	// Rute absensi karyawan
	attendanceGroup := api.Group("/attendance", auth)
	attendanceGroup.Post("/check-in", attendanceHandler.CheckIn)
	attendanceGroup.Post("/check-in/scan", attendanceHandler.CheckInScan)
	attendanceGroup.Post("/check-out", attendanceHandler.CheckOut)
	attendanceGroup.Get("/me", attendanceHandler.GetMyAttendance)

	// Rute absensi khusus admin. Path literal didaftarkan sebelum
	// rute berparameter supaya tidak tertangkap :id.
	adminAttendanceGroup := api.Group("/admin/attendance", auth, admin)
	adminAttendanceGroup.Get("/dashboard/today", attendanceHandler.GetTodayDashboard)
	adminAttendanceGroup.Get("/qr", attendanceHandler.GenerateQRCode)
	adminAttendanceGroup.Get("/summary", attendanceHandler.GetSummary)
	adminAttendanceGroup.Get("/export.csv", attendanceHandler.ExportCSV)
	adminAttendanceGroup.Get("/export.xlsx", attendanceHandler.ExportXLSX)
	adminAttendanceGroup.Get("/", attendanceHandler.GetReport)
	adminAttendanceGroup.Post("/:id/approve", attendanceHandler.Approve)

	// Rute pengajuan cuti
	leaveGroup := api.Group("/leaves", auth)
	leaveGroup.Post("/apply", leaveHandler.Apply)
	leaveGroup.Get("/me", leaveHandler.GetMyLeaves)
	adminLeaveGroup := leaveGroup.Group("/admin", admin)
	adminLeaveGroup.Get("/", leaveHandler.GetAllForAdmin)
	adminLeaveGroup.Put("/:id/status", leaveHandler.UpdateStatus)

	// Rute task per karyawan
	taskGroup := api.Group("/tasks", auth)
	taskGroup.Get("/", taskHandler.GetMyTasks)
	taskGroup.Post("/", taskHandler.Create)
	taskGroup.Put("/:id", taskHandler.SetCompletion)
	taskGroup.Delete("/:id", taskHandler.Delete)

	// Rute manajemen karyawan (admin)
	adminGroup := api.Group("/admin", auth, admin)
	adminGroup.Get("/", userHandler.GetAll)
	adminGroup.Post("/users", userHandler.Create)
	adminGroup.Put("/:id", userHandler.Update)
	adminGroup.Delete("/:id", userHandler.Delete)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Swagger documentation tersedia di: /docs/index.html")
}
