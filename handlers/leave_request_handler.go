package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/config/middleware"
	"digi-hr-backend/models"
	util "digi-hr-backend/pkg/utils"
	"digi-hr-backend/repository"
)

type LeaveRequestHandler struct {
	leaveRepo repository.LeaveRequestRepository
	userRepo  repository.UserRepository
	uploadDir string
}

func NewLeaveRequestHandler(leaveRepo repository.LeaveRequestRepository, userRepo repository.UserRepository, uploadDir string) *LeaveRequestHandler {
	return &LeaveRequestHandler{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		uploadDir: uploadDir,
	}
}

// Apply godoc
// @Summary Ajukan cuti
// @Description Membuat pengajuan cuti berstatus PENDING, lampiran dokumen opsional
// @Tags Leaves
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param startDate formData string true "Tanggal mulai (YYYY-MM-DD)"
// @Param endDate formData string true "Tanggal selesai (YYYY-MM-DD)"
// @Param reason formData string true "Alasan cuti"
// @Param document formData file false "Dokumen pendukung"
// @Success 201 {object} models.LeaveRequest
// @Router /leaves/apply [post]
func (h *LeaveRequestHandler) Apply(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	var payload models.LeaveApplyPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}
	// Format ISO membuat perbandingan leksikografis sama dengan kronologis.
	if payload.EndDate < payload.StartDate {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tanggal selesai tidak boleh sebelum tanggal mulai."})
	}

	now := time.Now()
	newRequest := &models.LeaveRequest{
		ID:        primitive.NewObjectID(),
		UserID:    claims.UserID,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Reason:    payload.Reason,
		Status:    models.LeaveStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Lampiran opsional; pengajuan tetap jalan tanpa dokumen.
	if file, err := c.FormFile("document"); err == nil && file != nil {
		uniqueFileName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
		attachmentDir := filepath.Join(h.uploadDir, "attachments")
		if err := os.MkdirAll(attachmentDir, 0o755); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan file"})
		}
		savePath := filepath.Join(attachmentDir, uniqueFileName)
		if err := c.SaveFile(file, savePath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan file"})
		}
		newRequest.AttachmentURL = "/uploads/attachments/" + uniqueFileName
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.leaveRepo.Create(ctx, newRequest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat pengajuan"})
	}

	return c.Status(fiber.StatusCreated).JSON(newRequest)
}

// GetMyLeaves godoc
// @Summary Daftar pengajuan cuti sendiri
// @Tags Leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequest
// @Router /leaves/me [get]
func (h *LeaveRequestHandler) GetMyLeaves(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	requests, err := h.leaveRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pengajuan"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// GetAllForAdmin godoc
// @Summary Daftar semua pengajuan cuti
// @Description Pengajuan cuti seluruh karyawan dengan filter opsional (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param from query string false "Tanggal awal"
// @Param to query string false "Tanggal akhir"
// @Param employeeId query string false "Filter kode karyawan"
// @Success 200 {array} models.LeaveRequestWithUser
// @Router /leaves/admin [get]
func (h *LeaveRequestHandler) GetAllForAdmin(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	var userID *primitive.ObjectID
	if employeeID := strings.TrimSpace(c.Query("employeeId")); employeeID != "" {
		user, err := h.userRepo.FindByEmployeeID(ctx, employeeID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
		}
		// Kode karyawan yang tidak dikenal menghasilkan list kosong,
		// bukan error.
		if user == nil {
			return c.Status(fiber.StatusOK).JSON([]models.LeaveRequestWithUser{})
		}
		userID = &user.ID
	}

	requests, err := h.leaveRepo.FindAllWithUser(ctx, userID, c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pengajuan"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// UpdateStatus godoc
// @Summary Putuskan pengajuan cuti
// @Description Status harus APPROVED atau REJECTED; keputusan bersifat final
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave request ID"
// @Param payload body models.LeaveDecisionPayload true "Keputusan"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /leaves/admin/{id}/status [put]
func (h *LeaveRequestHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	requestID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID pengajuan tidak valid"})
	}

	var payload models.LeaveDecisionPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if payload.Status != models.LeaveStatusApproved && payload.Status != models.LeaveStatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status provided. Must be APPROVED or REJECTED."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.leaveRepo.UpdateStatus(ctx, requestID, payload.Status, claims.UserID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memperbarui status"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Leave request %s successfully.", strings.ToLower(payload.Status)),
	})
}
