package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"digi-hr-backend/config"
	"digi-hr-backend/models"
)

type AttendanceRepository interface {
	// --- Methods for Attendance ---
	Create(ctx context.Context, attendance *models.Attendance) error
	FindByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error)
	SetCheckOut(ctx context.Context, attendanceID primitive.ObjectID, checkOutAt time.Time) error
	Approve(ctx context.Context, attendanceID, adminID primitive.ObjectID, approvedAt time.Time) error
	FindRangeByUser(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]models.Attendance, error)
	TodayDashboard(ctx context.Context, date string) ([]models.UserTodayStatus, error)
	Report(ctx context.Context, fromDate, toDate, employeeID string) ([]models.AttendanceReportRow, error)
	Summary(ctx context.Context, fromDate, toDate string) ([]models.AttendanceSummaryRow, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error

	// --- Methods for QRCode ---
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) error
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error)
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
	qrCodeCollection     *mongo.Collection
	userCollection       *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: db.Collection(config.AttendanceCollection),
		qrCodeCollection:     db.Collection(config.QRCodeCollection),
		userCollection:       db.Collection(config.UserCollection),
	}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	_, err := r.attendanceCollection.InsertOne(ctx, attendance)
	if err != nil {
		// Unique index (user_id, date): check-in kedua di hari yang sama.
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("gagal membuat absensi: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	filter := bson.M{"user_id": userID, "date": date}
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari absensi berdasarkan user dan tanggal: %w", err)
	}
	return &attendance, nil
}

// SetCheckOut hanya mengubah baris yang check_out_at-nya masih kosong;
// waktu check-out pertama tidak pernah ditimpa.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, attendanceID primitive.ObjectID, checkOutAt time.Time) error {
	filter := bson.M{"_id": attendanceID, "check_out_at": nil}
	update := bson.M{
		"$set": bson.M{
			"check_out_at": checkOutAt,
			"updated_at":   time.Now(),
		},
	}
	result, err := r.attendanceCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("gagal update check-out absensi: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attendanceRepository) Approve(ctx context.Context, attendanceID, adminID primitive.ObjectID, approvedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":      models.AttendanceStatusApproved,
			"approved_by": adminID,
			"approved_at": approvedAt,
			"updated_at":  time.Now(),
		},
	}
	result, err := r.attendanceCollection.UpdateOne(ctx, bson.M{"_id": attendanceID}, update)
	if err != nil {
		return fmt.Errorf("gagal menyetujui absensi: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attendanceRepository) FindRangeByUser(ctx context.Context, userID primitive.ObjectID, fromDate, toDate string) ([]models.Attendance, error) {
	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": fromDate, "$lte": toDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "check_in_at", Value: -1}})

	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari riwayat absensi user: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode riwayat absensi: %w", err)
	}

	if len(results) == 0 {
		return []models.Attendance{}, nil
	}
	return results, nil
}

// TodayDashboard mengembalikan semua user aktif di-outer-join dengan absensi
// pada tanggal yang diberikan; user tanpa absensi tetap muncul dengan
// checked_in=false.
func (r *attendanceRepository) TodayDashboard(ctx context.Context, date string) ([]models.UserTodayStatus, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "active", Value: true}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.AttendanceCollection},
			{Key: "let", Value: bson.D{{Key: "uid", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
						bson.D{{Key: "$eq", Value: bson.A{"$user_id", "$$uid"}}},
						bson.D{{Key: "$eq", Value: bson.A{"$date", date}}},
					}}}},
				}}},
			}},
			{Key: "as", Value: "attendance"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$attendance"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
			{Key: "employee_id", Value: 1},
			{Key: "role", Value: 1},
			{Key: "checked_in", Value: bson.D{{Key: "$gt", Value: bson.A{"$attendance.check_in_at", nil}}}},
			{Key: "status", Value: "$attendance.status"},
			{Key: "check_in_at", Value: "$attendance.check_in_at"},
			{Key: "check_out_at", Value: "$attendance.check_out_at"},
		}}},
	}

	cursor, err := r.userCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal aggregation untuk dashboard kehadiran hari ini: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.UserTodayStatus
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode hasil aggregation dashboard: %w", err)
	}

	if len(results) == 0 {
		return []models.UserTodayStatus{}, nil
	}
	return results, nil
}

// Report memproyeksikan absensi pada rentang tanggal ke bentuk tabular,
// di-join dengan data user. employeeID kosong berarti semua karyawan.
func (r *attendanceRepository) Report(ctx context.Context, fromDate, toDate, employeeID string) ([]models.AttendanceReportRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "date", Value: bson.D{{Key: "$gte", Value: fromDate}, {Key: "$lte", Value: toDate}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: "$userDetails"}},
	}

	if employeeID != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "userDetails.employee_id", Value: employeeID},
		}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "check_in_at", Value: -1}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: "$userDetails.name"},
			{Key: "employee_id", Value: "$userDetails.employee_id"},
			{Key: "role", Value: "$userDetails.role"},
			{Key: "check_in_at", Value: 1},
			{Key: "check_out_at", Value: 1},
			{Key: "status", Value: 1},
		}}},
	)

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal aggregation untuk laporan kehadiran: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceReportRow
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode hasil laporan kehadiran: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceReportRow{}, nil
	}
	return results, nil
}

// Summary menghitung jumlah hari hadir per user pada rentang tanggal.
func (r *attendanceRepository) Summary(ctx context.Context, fromDate, toDate string) ([]models.AttendanceSummaryRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "date", Value: bson.D{{Key: "$gte", Value: fromDate}, {Key: "$lte", Value: toDate}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "days_present", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: "$userDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "days_present", Value: 1},
			{Key: "name", Value: "$userDetails.name"},
			{Key: "employee_id", Value: "$userDetails.employee_id"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "employee_id", Value: 1}}}},
	}

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal aggregation untuk ringkasan kehadiran: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceSummaryRow
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode ringkasan kehadiran: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceSummaryRow{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.attendanceCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("gagal menghapus absensi milik user: %w", err)
	}
	return nil
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	_, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("gagal membuat QR Code: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": code}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	var qrCode models.QRCode

	filter := bson.M{
		"date":       date,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err := r.qrCodeCollection.FindOne(ctx, filter, opts).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code aktif: %w", err)
	}
	return &qrCode, nil
}
