package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/models"
	"digi-hr-backend/repository"
)

func newAttendanceApp(claims *models.Claims, repo *fakeAttendanceRepo) *fiber.App {
	app := fiber.New()
	handler := NewAttendanceHandler(repo)
	group := app.Group("/api/attendance", authAs(claims))
	group.Post("/check-in", handler.CheckIn)
	group.Post("/check-in/scan", handler.CheckInScan)
	group.Post("/check-out", handler.CheckOut)
	group.Get("/me", handler.GetMyAttendance)
	adminGroup := app.Group("/api/admin/attendance", authAs(claims))
	adminGroup.Get("/dashboard/today", handler.GetTodayDashboard)
	adminGroup.Get("/export.csv", handler.ExportCSV)
	adminGroup.Get("/summary", handler.GetSummary)
	adminGroup.Get("/", handler.GetReport)
	adminGroup.Post("/:id/approve", handler.Approve)
	return app
}

func TestCheckInCreatesPendingRecord(t *testing.T) {
	claims := employeeClaims()
	var created *models.Attendance
	repo := &fakeAttendanceRepo{
		createFn: func(ctx context.Context, attendance *models.Attendance) error {
			created = attendance
			return nil
		},
	}

	app := newAttendanceApp(claims, repo)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/attendance/check-in", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	if created == nil {
		t.Fatal("expected a record to be created")
	}
	if created.UserID != claims.UserID {
		t.Fatal("record must belong to the authenticated user")
	}
	if created.Status != models.AttendanceStatusPending {
		t.Fatalf("expected status PENDING, got %s", created.Status)
	}
	if created.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("expected today's date, got %s", created.Date)
	}
}

func TestCheckInTwiceSameDayConflicts(t *testing.T) {
	repo := &fakeAttendanceRepo{
		createFn: func(ctx context.Context, attendance *models.Attendance) error {
			return repository.ErrDuplicate
		},
	}

	app := newAttendanceApp(employeeClaims(), repo)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/attendance/check-in", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	app := newAttendanceApp(employeeClaims(), &fakeAttendanceRepo{})
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/attendance/check-out", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestCheckOutIsIdempotent(t *testing.T) {
	firstCheckOut := time.Date(2025, 3, 10, 17, 2, 0, 0, time.UTC)
	setCheckOutCalled := false
	repo := &fakeAttendanceRepo{
		findByUserAndDateFn: func(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
			return &models.Attendance{
				ID:         primitive.NewObjectID(),
				UserID:     userID,
				Date:       date,
				CheckOutAt: &firstCheckOut,
			}, nil
		},
		setCheckOutFn: func(ctx context.Context, attendanceID primitive.ObjectID, checkOutAt time.Time) error {
			setCheckOutCalled = true
			return nil
		},
	}

	app := newAttendanceApp(employeeClaims(), repo)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/attendance/check-out", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if setCheckOutCalled {
		t.Fatal("repeat check-out must not overwrite the stored time")
	}

	var body struct {
		CheckOutTime time.Time `json:"checkOutTime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("expected JSON body, got %v", err)
	}
	if !body.CheckOutTime.Equal(firstCheckOut) {
		t.Fatalf("expected first check-out time %v, got %v", firstCheckOut, body.CheckOutTime)
	}
}

func TestCheckOutRecordsTime(t *testing.T) {
	var setID primitive.ObjectID
	attendanceID := primitive.NewObjectID()
	repo := &fakeAttendanceRepo{
		findByUserAndDateFn: func(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
			return &models.Attendance{ID: attendanceID, UserID: userID, Date: date}, nil
		},
		setCheckOutFn: func(ctx context.Context, id primitive.ObjectID, checkOutAt time.Time) error {
			setID = id
			return nil
		},
	}

	app := newAttendanceApp(employeeClaims(), repo)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/attendance/check-out", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if setID != attendanceID {
		t.Fatal("check-out must target today's attendance record")
	}
}

func TestApproveUnknownAttendance(t *testing.T) {
	repo := &fakeAttendanceRepo{
		approveFn: func(ctx context.Context, attendanceID, adminID primitive.ObjectID, approvedAt time.Time) error {
			return repository.ErrNotFound
		},
	}

	app := newAttendanceApp(adminClaims(), repo)
	target := "/api/admin/attendance/" + primitive.NewObjectID().Hex() + "/approve"
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestApproveInvalidID(t *testing.T) {
	app := newAttendanceApp(adminClaims(), &fakeAttendanceRepo{})
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/admin/attendance/bukan-hex/approve", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestApproveStampsApprover(t *testing.T) {
	claims := adminClaims()
	var gotAdminID primitive.ObjectID
	repo := &fakeAttendanceRepo{
		approveFn: func(ctx context.Context, attendanceID, adminID primitive.ObjectID, approvedAt time.Time) error {
			gotAdminID = adminID
			return nil
		},
	}

	app := newAttendanceApp(claims, repo)
	target := "/api/admin/attendance/" + primitive.NewObjectID().Hex() + "/approve"
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, target, nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if gotAdminID != claims.UserID {
		t.Fatal("approver must be the authenticated admin")
	}
}

func TestGetMyAttendancePassesRangeVerbatim(t *testing.T) {
	var gotFrom, gotTo string
	repo := &fakeAttendanceRepo{
		findRangeByUserFn: func(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]models.Attendance, error) {
			gotFrom, gotTo = fromDate, toDate
			return []models.Attendance{}, nil
		},
	}

	app := newAttendanceApp(employeeClaims(), repo)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/attendance/me?from=2025-03-10&to=2025-03-01", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if gotFrom != "2025-03-10" || gotTo != "2025-03-01" {
		t.Fatalf("range bounds must be passed verbatim, got from=%q to=%q", gotFrom, gotTo)
	}
}

func TestCheckInScanUnknownCode(t *testing.T) {
	app := newAttendanceApp(employeeClaims(), &fakeAttendanceRepo{})
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/check-in/scan", strings.NewReader(`{"qr_code_value":"tidak-ada"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestCheckInScanExpiredCode(t *testing.T) {
	repo := &fakeAttendanceRepo{
		findQRCodeByValueFn: func(ctx context.Context, code string) (*models.QRCode, error) {
			return &models.QRCode{
				Code:      code,
				Date:      time.Now().Format("2006-01-02"),
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil
		},
	}

	app := newAttendanceApp(employeeClaims(), repo)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/check-in/scan", strings.NewReader(`{"qr_code_value":"kadaluarsa"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestCheckInScanValidCode(t *testing.T) {
	createCalled := false
	repo := &fakeAttendanceRepo{
		findQRCodeByValueFn: func(ctx context.Context, code string) (*models.QRCode, error) {
			return &models.QRCode{
				Code:      code,
				Date:      time.Now().Format("2006-01-02"),
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
		createFn: func(ctx context.Context, attendance *models.Attendance) error {
			createCalled = true
			return nil
		},
	}

	app := newAttendanceApp(employeeClaims(), repo)
	req := httptest.NewRequest(http.MethodPost, "/api/attendance/check-in/scan", strings.NewReader(`{"qr_code_value":"valid-hari-ini"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	if !createCalled {
		t.Fatal("expected an attendance record to be created")
	}
}

func TestExportCSVWritesHeaderAndRows(t *testing.T) {
	checkIn := time.Date(2025, 3, 10, 8, 1, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{
		reportFn: func(ctx context.Context, fromDate, toDate, employeeID string) ([]models.AttendanceReportRow, error) {
			return []models.AttendanceReportRow{
				{
					ID:         primitive.NewObjectID(),
					Name:       "Budi Santoso",
					EmployeeID: "EMP-001",
					Role:       models.RoleEmployee,
					CheckInAt:  checkIn,
					Status:     models.AttendanceStatusPending,
				},
			}, nil
		},
	}

	app := newAttendanceApp(adminClaims(), repo)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/attendance/export.csv?from=2025-03-01&to=2025-03-31", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(got, "attendance_report.csv") {
		t.Fatalf("expected attachment disposition, got %q", got)
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("expected valid CSV, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][1] != "name" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][1] != "Budi Santoso" || records[1][2] != "EMP-001" {
		t.Fatalf("unexpected row: %v", records[1])
	}
	// Kolom check_out kosong saat belum check-out
	if records[1][5] != "" {
		t.Fatalf("expected empty check_out column, got %q", records[1][5])
	}
}

func TestGetSummaryRequiresRange(t *testing.T) {
	app := newAttendanceApp(adminClaims(), &fakeAttendanceRepo{})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/attendance/summary?from=2025-03-01", nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}
