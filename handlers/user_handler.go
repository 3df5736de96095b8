package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/config/middleware"
	"digi-hr-backend/models"
	"digi-hr-backend/pkg/password"
	util "digi-hr-backend/pkg/utils"
	"digi-hr-backend/repository"
)

type UserHandler struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRequestRepository
	taskRepo       repository.TaskRepository
}

func NewUserHandler(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	leaveRepo repository.LeaveRequestRepository,
	taskRepo repository.TaskRepository,
) *UserHandler {
	return &UserHandler{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		taskRepo:       taskRepo,
	}
}

// GetMe godoc
// @Summary Profil sendiri
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mendapatkan user"})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found."})
	}

	// PasswordHash di-tag `json:"-"`, jadi hash tidak pernah ikut respons.
	return c.Status(fiber.StatusOK).JSON(user)
}

// Create godoc
// @Summary Tambah karyawan baru
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserCreatePayload true "Data karyawan baru"
// @Success 201 {object} models.User
// @Failure 409 {object} models.ConflictErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var payload models.UserCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal hash password"})
	}

	newUser := &models.User{
		EmployeeID:   payload.EmployeeID,
		Name:         payload.Name,
		Role:         payload.Role,
		PasswordHash: hashedPassword,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Department:   payload.Department,
		Salary:       payload.Salary,
		DateHired:    payload.DateHired,
		Address:      payload.Address,
		Active:       true,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Employee with this ID or email already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal mendaftarkan user"})
	}

	return c.Status(fiber.StatusCreated).JSON(newUser)
}

// Update godoc
// @Summary Update data karyawan
// @Description Hanya field yang dikirim yang diupdate; payload kosong ditolak
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body models.UserUpdatePayload true "Field yang diubah"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID user tidak valid"})
	}

	var payload models.UserUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	// Susun update hanya dari field yang benar-benar dikirim.
	updateData := bson.M{}
	if payload.Name != nil {
		updateData["name"] = *payload.Name
	}
	if payload.Role != nil {
		updateData["role"] = *payload.Role
	}
	if payload.Password != nil {
		hashed, err := password.HashPassword(*payload.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal hash password"})
		}
		updateData["password_hash"] = hashed
	}
	if payload.Active != nil {
		updateData["active"] = *payload.Active
	}
	if payload.Email != nil {
		updateData["email"] = *payload.Email
	}
	if payload.Phone != nil {
		updateData["phone"] = *payload.Phone
	}
	if payload.Department != nil {
		updateData["department"] = *payload.Department
	}
	if payload.Salary != nil {
		updateData["salary"] = *payload.Salary
	}
	if payload.DateHired != nil {
		updateData["date_hired"] = *payload.DateHired
	}
	if payload.Address != nil {
		updateData["address"] = *payload.Address
	}

	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields provided for update."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.Update(ctx, userID, updateData); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found."})
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Employee with this ID or email already exists."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal mengupdate user"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User updated successfully."})
}

// Delete godoc
// @Summary Hapus karyawan beserta data turunannya
// @Description Absensi, pengajuan cuti, dan task milik user dihapus lebih dulu
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID user tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	// Data turunan dihapus lebih dulu; delete pada user yang tidak punya
	// data turunan adalah no-op sehingga aman dijalankan tanpa cek.
	if err := h.attendanceRepo.DeleteByUser(ctx, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal menghapus data absensi user"})
	}
	if err := h.leaveRepo.DeleteByUser(ctx, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal menghapus data cuti user"})
	}
	if err := h.taskRepo.DeleteByUser(ctx, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal menghapus data task user"})
	}

	if err := h.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal menghapus user"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deleted successfully."})
}

// GetAll godoc
// @Summary Daftar semua karyawan
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /admin [get]
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, err := h.userRepo.FindAll(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal mendapatkan semua user"})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}
