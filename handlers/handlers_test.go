package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"digi-hr-backend/models"
)

// authAs menirukan AuthMiddleware dengan claims yang sudah jadi, supaya
// handler bisa diuji tanpa token sungguhan.
func authAs(claims *models.Claims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", claims)
		return c.Next()
	}
}

func employeeClaims() *models.Claims {
	return &models.Claims{
		UserID:     primitive.NewObjectID(),
		EmployeeID: "EMP-001",
		Role:       models.RoleEmployee,
	}
}

func adminClaims() *models.Claims {
	return &models.Claims{
		UserID:     primitive.NewObjectID(),
		EmployeeID: "ADM-001",
		Role:       models.RoleAdmin,
	}
}

type fakeUserRepo struct {
	createFn           func(ctx context.Context, user *models.User) error
	findByEmployeeIDFn func(ctx context.Context, employeeID string) (*models.User, error)
	findByIDFn         func(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	updateFn           func(ctx context.Context, id primitive.ObjectID, updateData bson.M) error
	updatePasswordFn   func(ctx context.Context, id primitive.ObjectID, hashedPassword string) error
	deleteFn           func(ctx context.Context, id primitive.ObjectID) error
	findAllFn          func(ctx context.Context) ([]models.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) FindByEmployeeID(ctx context.Context, employeeID string) (*models.User, error) {
	if f.findByEmployeeIDFn == nil {
		return nil, nil
	}
	return f.findByEmployeeIDFn(ctx, employeeID)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.findByIDFn == nil {
		return nil, nil
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, id, updateData)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	if f.updatePasswordFn == nil {
		return nil
	}
	return f.updatePasswordFn(ctx, id, hashedPassword)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	if f.findAllFn == nil {
		return nil, nil
	}
	return f.findAllFn(ctx)
}

type fakeAttendanceRepo struct {
	createFn                 func(ctx context.Context, attendance *models.Attendance) error
	findByUserAndDateFn      func(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error)
	setCheckOutFn            func(ctx context.Context, attendanceID primitive.ObjectID, checkOutAt time.Time) error
	approveFn                func(ctx context.Context, attendanceID, adminID primitive.ObjectID, approvedAt time.Time) error
	findRangeByUserFn        func(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]models.Attendance, error)
	todayDashboardFn         func(ctx context.Context, date string) ([]models.UserTodayStatus, error)
	reportFn                 func(ctx context.Context, fromDate, toDate, employeeID string) ([]models.AttendanceReportRow, error)
	summaryFn                func(ctx context.Context, fromDate, toDate string) ([]models.AttendanceSummaryRow, error)
	deleteByUserFn           func(ctx context.Context, userID primitive.ObjectID) error
	createQRCodeFn           func(ctx context.Context, qrCode *models.QRCode) error
	findQRCodeByValueFn      func(ctx context.Context, code string) (*models.QRCode, error)
	findActiveQRCodeByDateFn func(ctx context.Context, date string) (*models.QRCode, error)
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, attendance *models.Attendance) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, attendance)
}

func (f *fakeAttendanceRepo) FindByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
	if f.findByUserAndDateFn == nil {
		return nil, nil
	}
	return f.findByUserAndDateFn(ctx, userID, date)
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, attendanceID primitive.ObjectID, checkOutAt time.Time) error {
	if f.setCheckOutFn == nil {
		return nil
	}
	return f.setCheckOutFn(ctx, attendanceID, checkOutAt)
}

func (f *fakeAttendanceRepo) Approve(ctx context.Context, attendanceID, adminID primitive.ObjectID, approvedAt time.Time) error {
	if f.approveFn == nil {
		return nil
	}
	return f.approveFn(ctx, attendanceID, adminID, approvedAt)
}

func (f *fakeAttendanceRepo) FindRangeByUser(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]models.Attendance, error) {
	if f.findRangeByUserFn == nil {
		return nil, nil
	}
	return f.findRangeByUserFn(ctx, userID, fromDate, toDate)
}

func (f *fakeAttendanceRepo) TodayDashboard(ctx context.Context, date string) ([]models.UserTodayStatus, error) {
	if f.todayDashboardFn == nil {
		return nil, nil
	}
	return f.todayDashboardFn(ctx, date)
}

func (f *fakeAttendanceRepo) Report(ctx context.Context, fromDate, toDate, employeeID string) ([]models.AttendanceReportRow, error) {
	if f.reportFn == nil {
		return nil, nil
	}
	return f.reportFn(ctx, fromDate, toDate, employeeID)
}

func (f *fakeAttendanceRepo) Summary(ctx context.Context, fromDate, toDate string) ([]models.AttendanceSummaryRow, error) {
	if f.summaryFn == nil {
		return nil, nil
	}
	return f.summaryFn(ctx, fromDate, toDate)
}

func (f *fakeAttendanceRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if f.deleteByUserFn == nil {
		return nil
	}
	return f.deleteByUserFn(ctx, userID)
}

func (f *fakeAttendanceRepo) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	if f.createQRCodeFn == nil {
		return nil
	}
	return f.createQRCodeFn(ctx, qrCode)
}

func (f *fakeAttendanceRepo) FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error) {
	if f.findQRCodeByValueFn == nil {
		return nil, nil
	}
	return f.findQRCodeByValueFn(ctx, code)
}

func (f *fakeAttendanceRepo) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	if f.findActiveQRCodeByDateFn == nil {
		return nil, nil
	}
	return f.findActiveQRCodeByDateFn(ctx, date)
}

type fakeLeaveRepo struct {
	createFn              func(ctx context.Context, req *models.LeaveRequest) error
	findByUserIDFn        func(ctx context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error)
	findAllWithUserFn     func(ctx context.Context, userID *primitive.ObjectID, fromDate, toDate string) ([]models.LeaveRequestWithUser, error)
	updateStatusFn        func(ctx context.Context, id primitive.ObjectID, status string, adminID primitive.ObjectID, decidedAt time.Time) error
	updateAttachmentURLFn func(ctx context.Context, id primitive.ObjectID, fileURL string) error
	deleteByUserFn        func(ctx context.Context, userID primitive.ObjectID) error
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req *models.LeaveRequest) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, req)
}

func (f *fakeLeaveRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error) {
	if f.findByUserIDFn == nil {
		return nil, nil
	}
	return f.findByUserIDFn(ctx, userID)
}

func (f *fakeLeaveRepo) FindAllWithUser(ctx context.Context, userID *primitive.ObjectID, fromDate, toDate string) ([]models.LeaveRequestWithUser, error) {
	if f.findAllWithUserFn == nil {
		return nil, nil
	}
	return f.findAllWithUserFn(ctx, userID, fromDate, toDate)
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, adminID primitive.ObjectID, decidedAt time.Time) error {
	if f.updateStatusFn == nil {
		return nil
	}
	return f.updateStatusFn(ctx, id, status, adminID, decidedAt)
}

func (f *fakeLeaveRepo) UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) error {
	if f.updateAttachmentURLFn == nil {
		return nil
	}
	return f.updateAttachmentURLFn(ctx, id, fileURL)
}

func (f *fakeLeaveRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if f.deleteByUserFn == nil {
		return nil
	}
	return f.deleteByUserFn(ctx, userID)
}

type fakeTaskRepo struct {
	findByUserIDFn  func(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	createFn        func(ctx context.Context, task *models.Task) error
	setCompletionFn func(ctx context.Context, id, userID primitive.ObjectID, completed bool) (*models.Task, error)
	deleteFn        func(ctx context.Context, id, userID primitive.ObjectID) error
	deleteByUserFn  func(ctx context.Context, userID primitive.ObjectID) error
}

func (f *fakeTaskRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	if f.findByUserIDFn == nil {
		return nil, nil
	}
	return f.findByUserIDFn(ctx, userID)
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, task)
}

func (f *fakeTaskRepo) SetCompletion(ctx context.Context, id, userID primitive.ObjectID, completed bool) (*models.Task, error) {
	if f.setCompletionFn == nil {
		return nil, nil
	}
	return f.setCompletionFn(ctx, id, userID, completed)
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id, userID)
}

func (f *fakeTaskRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if f.deleteByUserFn == nil {
		return nil
	}
	return f.deleteByUserFn(ctx, userID)
}
