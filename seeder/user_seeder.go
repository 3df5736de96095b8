package seeder

import (
	"context"
	"log"
	"time"

	"digi-hr-backend/models"
	"digi-hr-backend/pkg/password"
	"digi-hr-backend/repository"
)

// SeedAdmin memastikan selalu ada satu akun ADMIN untuk login pertama.
// Kalau employee ID-nya sudah terdaftar, seeding dilewati.
func SeedAdmin(userRepo repository.UserRepository) {
	log.Println("🌱 Memulai seeding user admin...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const adminEmployeeID = "ADM-001"

	existing, err := userRepo.FindByEmployeeID(ctx, adminEmployeeID)
	if err != nil {
		log.Printf("❌ Gagal mengecek user admin: %v\n", err)
		return
	}
	if existing != nil {
		log.Println("✅ User admin sudah ada, seeding dilewati.")
		return
	}

	hashed, err := password.HashPassword("Admin123!")
	if err != nil {
		log.Fatalf("❌ Gagal hash password admin: %v", err)
	}

	admin := &models.User{
		EmployeeID:   adminEmployeeID,
		Name:         "Admin Utama",
		Email:        "admin@digi-hr.local",
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		Department:   "Manajemen",
		Address:      "Jl. Administrasi No. 1, Jakarta",
		Active:       true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("❌ Gagal menyimpan user admin: %v\n", err)
		return
	}

	log.Printf("✔ User Admin (%s) berhasil ditambahkan.\n", admin.EmployeeID)
	log.Println("✅ Seeding user admin selesai.")
}
