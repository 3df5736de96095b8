package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/config/middleware"
	"digi-hr-backend/models"
	util "digi-hr-backend/pkg/utils"
	"digi-hr-backend/repository"
)

type AttendanceHandler struct {
	repo repository.AttendanceRepository
}

func NewAttendanceHandler(repo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{repo: repo}
}

var reportHeader = []string{"id", "name", "employee_id", "role", "check_in_at", "check_out_at", "status"}

// CheckIn godoc
// @Summary Check-in
// @Description Mencatat check-in untuk hari ini; satu record per user per hari
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.MessageResponse
// @Failure 409 {object} models.ConflictErrorResponse
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	return h.performCheckIn(c, claims.UserID)
}

// CheckInScan godoc
// @Summary Check-in via QR kiosk
// @Description Validasi kode QR harian lalu mencatat check-in seperti biasa
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Kode hasil scan"
// @Success 201 {object} models.MessageResponse
// @Failure 409 {object} models.ConflictErrorResponse
// @Router /attendance/check-in/scan [post]
func (h *AttendanceHandler) CheckInScan(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	qrCode, err := h.repo.FindQRCodeByValue(ctx, payload.QRCodeValue)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	if qrCode == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "QR Code tidak ditemukan atau tidak valid."})
	}
	if time.Now().After(qrCode.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code sudah kadaluarsa."})
	}
	if qrCode.Date != time.Now().Format("2006-01-02") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code ini tidak berlaku untuk hari ini."})
	}

	return h.performCheckIn(c, claims.UserID)
}

func (h *AttendanceHandler) performCheckIn(c *fiber.Ctx, userID primitive.ObjectID) error {
	now := time.Now()
	newAttendance := &models.Attendance{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Date:      now.Format("2006-01-02"), // "hari ini" selalu dari jam server
		CheckInAt: now,
		Status:    models.AttendanceStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Create(ctx, newAttendance); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already checked in today."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Check-in recorded successfully."})
}

// CheckOut godoc
// @Summary Check-out
// @Description Mengisi waktu check-out pada record check-in hari ini
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CheckOutSuccessResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	attendance, err := h.repo.FindByUserAndDate(ctx, claims.UserID, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	if attendance == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Check-in record for today not found."})
	}

	// Check-out kedua tidak memutasi apa pun; waktu pertama yang berlaku.
	if attendance.CheckOutAt != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message":      "Already checked out today.",
			"checkOutTime": attendance.CheckOutAt,
		})
	}

	checkOutAt := time.Now()
	if err := h.repo.SetCheckOut(ctx, attendance.ID, checkOutAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Check-in record for today not found."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Check-out successful.",
		"checkOutTime": checkOutAt,
	})
}

// GetMyAttendance godoc
// @Summary Riwayat absensi sendiri
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param from query string true "Tanggal awal (YYYY-MM-DD)"
// @Param to query string true "Tanggal akhir (YYYY-MM-DD)"
// @Success 200 {array} models.Attendance
// @Router /attendance/me [get]
func (h *AttendanceHandler) GetMyAttendance(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	// Batas rentang dipakai apa adanya; rentang terbalik menghasilkan list
	// kosong, bukan error.
	records, err := h.repo.FindRangeByUser(ctx, claims.UserID, c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat kehadiran"})
	}

	return c.Status(fiber.StatusOK).JSON(records)
}

// GetTodayDashboard godoc
// @Summary Dashboard kehadiran hari ini
// @Description Semua user aktif beserta status absensi hari ini (admin only)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserTodayStatus
// @Router /admin/attendance/dashboard/today [get]
func (h *AttendanceHandler) GetTodayDashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	rows, err := h.repo.TodayDashboard(ctx, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil daftar kehadiran"})
	}

	return c.Status(fiber.StatusOK).JSON(rows)
}

// Approve godoc
// @Summary Setujui absensi
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attendance ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /admin/attendance/{id}/approve [post]
func (h *AttendanceHandler) Approve(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	attendanceID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format ID absensi tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Approve(ctx, attendanceID, claims.UserID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Attendance record not found."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Attendance approved successfully."})
}

// GetReport godoc
// @Summary Laporan absensi
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param from query string true "Tanggal awal"
// @Param to query string true "Tanggal akhir"
// @Param employeeId query string false "Filter kode karyawan"
// @Success 200 {array} models.AttendanceReportRow
// @Router /admin/attendance [get]
func (h *AttendanceHandler) GetReport(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	rows, err := h.repo.Report(ctx, c.Query("from"), c.Query("to"), c.Query("employeeId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil laporan kehadiran"})
	}

	return c.Status(fiber.StatusOK).JSON(rows)
}

// ExportCSV godoc
// @Summary Ekspor laporan absensi sebagai CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Param from query string true "Tanggal awal"
// @Param to query string true "Tanggal akhir"
// @Param employeeId query string false "Filter kode karyawan"
// @Success 200 {string} string "CSV attachment"
// @Router /admin/attendance/export.csv [get]
func (h *AttendanceHandler) ExportCSV(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	rows, err := h.repo.Report(ctx, c.Query("from"), c.Query("to"), c.Query("employeeId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil laporan kehadiran"})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(reportHeader); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menulis CSV"})
	}
	for _, row := range rows {
		if err := writer.Write(reportRecord(row)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menulis CSV"})
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menulis CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance_report.csv"`)
	return c.Send(buf.Bytes())
}

// ExportXLSX godoc
// @Summary Ekspor laporan absensi sebagai XLSX
// @Tags Admin
// @Security BearerAuth
// @Param from query string true "Tanggal awal"
// @Param to query string true "Tanggal akhir"
// @Param employeeId query string false "Filter kode karyawan"
// @Success 200 {string} string "XLSX attachment"
// @Router /admin/attendance/export.xlsx [get]
func (h *AttendanceHandler) ExportXLSX(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	rows, err := h.repo.Report(ctx, c.Query("from"), c.Query("to"), c.Query("employeeId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil laporan kehadiran"})
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for col, title := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i, row := range rows {
		for col, value := range reportRecord(row) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menulis XLSX"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="attendance_report.xlsx"`)
	return c.Send(buf.Bytes())
}

func reportRecord(row models.AttendanceReportRow) []string {
	checkOut := ""
	if row.CheckOutAt != nil {
		checkOut = row.CheckOutAt.Format(time.RFC3339)
	}
	return []string{
		row.ID.Hex(),
		row.Name,
		row.EmployeeID,
		row.Role,
		row.CheckInAt.Format(time.RFC3339),
		checkOut,
		row.Status,
	}
}

// GetSummary godoc
// @Summary Ringkasan kehadiran per karyawan
// @Description Jumlah hari hadir dibanding jumlah hari kerja pada rentang tanggal
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param from query string true "Tanggal awal"
// @Param to query string true "Tanggal akhir"
// @Success 200 {object} object{working_days=int,rows=array}
// @Router /admin/attendance/summary [get]
func (h *AttendanceHandler) GetSummary(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter 'from' dan 'to' wajib diisi."})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	rows, err := h.repo.Summary(ctx, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil ringkasan kehadiran"})
	}

	// Hari libur nasional dikurangkan bila API-nya bisa dihubungi; kalau
	// tidak, kalender jatuh ke Senin-Jumat saja.
	var holidays map[string]bool
	if len(from) >= 4 {
		holidays, _ = util.GetHolidayMap(from[:4])
	}

	workingDays, err := util.CountWorkingDays(from, to, holidays)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	for i := range rows {
		rows[i].WorkingDays = workingDays
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"working_days": workingDays,
		"rows":         rows,
	})
}

// GenerateQRCode godoc
// @Summary QR Code absensi harian untuk kiosk
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{qr_code_image=string,expires_at=string}
// @Router /admin/attendance/qr [get]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	today := now.Format("2006-01-02")

	// Kode yang masih aktif di hari yang sama dipakai ulang supaya kiosk
	// yang me-refresh tidak membatalkan kode yang sudah terpajang.
	active, err := h.repo.FindActiveQRCodeByDate(ctx, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mencari QR Code aktif."})
	}

	if active == nil {
		expiresAt := time.Date(now.Year(), now.Month(), now.Day(), 23, 0, 0, 0, now.Location())
		active = &models.QRCode{
			ID:        primitive.NewObjectID(),
			Code:      uuid.New().String(),
			Date:      today,
			ExpiresAt: expiresAt,
			CreatedAt: now,
		}
		if err := h.repo.CreateQRCode(ctx, active); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data QR Code."})
		}
	}

	png, err := qrcode.Encode(active.Code, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code."})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "QR Code berhasil dibuat",
		"qr_code_image": fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)),
		"expires_at":    active.ExpiresAt,
	})
}
