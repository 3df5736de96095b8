package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"digi-hr-backend/config"
	"digi-hr-backend/models"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req *models.LeaveRequest) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error)
	FindAllWithUser(ctx context.Context, userID *primitive.ObjectID, fromDate, toDate string) ([]models.LeaveRequestWithUser, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, adminID primitive.ObjectID, decidedAt time.Time) error
	UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type leaveRequestRepository struct {
	collection *mongo.Collection
}

func NewLeaveRequestRepository(db *mongo.Database) LeaveRequestRepository {
	return &leaveRequestRepository{
		collection: db.Collection(config.LeaveRequestCollection),
	}
}

func (r *leaveRequestRepository) Create(ctx context.Context, req *models.LeaveRequest) error {
	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("gagal membuat pengajuan cuti: %w", err)
	}
	return nil
}

func (r *leaveRequestRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari pengajuan cuti berdasarkan user ID: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("gagal decode hasil pengajuan cuti: %w", err)
	}

	if len(requests) == 0 {
		return []models.LeaveRequest{}, nil
	}
	return requests, nil
}

// FindAllWithUser mengembalikan pengajuan cuti di-join dengan nama dan kode
// karyawan. userID nil berarti semua user; rentang tanggal hanya dipakai
// bila kedua batas terisi (start_date >= from dan end_date <= to).
func (r *leaveRequestRepository) FindAllWithUser(ctx context.Context, userID *primitive.ObjectID, fromDate, toDate string) ([]models.LeaveRequestWithUser, error) {
	match := bson.D{}
	if userID != nil {
		match = append(match, bson.E{Key: "user_id", Value: *userID})
	}
	if fromDate != "" && toDate != "" {
		match = append(match,
			bson.E{Key: "start_date", Value: bson.D{{Key: "$gte", Value: fromDate}}},
			bson.E{Key: "end_date", Value: bson.D{{Key: "$lte", Value: toDate}}},
		)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: "$userDetails"}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "end_date", Value: 1},
			{Key: "reason", Value: 1},
			{Key: "status", Value: 1},
			{Key: "attachment_url", Value: 1},
			{Key: "approved_by", Value: 1},
			{Key: "approved_at", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "employee_name", Value: "$userDetails.name"},
			{Key: "employee_id", Value: "$userDetails.employee_id"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal melakukan agregasi untuk pengajuan dengan detail user: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequestWithUser
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("gagal mendecode pengajuan dengan detail user: %w", err)
	}

	if len(requests) == 0 {
		return []models.LeaveRequestWithUser{}, nil
	}
	return requests, nil
}

func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, adminID primitive.ObjectID, decidedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":      status,
			"approved_by": adminID,
			"approved_at": decidedAt,
			"updated_at":  time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate status pengajuan: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *leaveRequestRepository) UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) error {
	update := bson.M{"$set": bson.M{"attachment_url": fileURL, "updated_at": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate URL lampiran: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *leaveRequestRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("gagal menghapus pengajuan cuti milik user: %w", err)
	}
	return nil
}
