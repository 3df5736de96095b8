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

type TaskRepository interface {
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	SetCompletion(ctx context.Context, id, userID primitive.ObjectID, completed bool) (*models.Task, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type taskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) TaskRepository {
	return &taskRepository{
		collection: db.Collection(config.TaskCollection),
	}
}

func (r *taskRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari task milik user: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("gagal decode task: %w", err)
	}

	if len(tasks) == 0 {
		return []models.Task{}, nil
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	_, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("gagal membuat task: %w", err)
	}
	return nil
}

// SetCompletion menarget (id, user_id) sekaligus: task milik user lain
// tidak pernah match, jadi kebocoran data antar user tidak mungkin terjadi.
func (r *taskRepository) SetCompletion(ctx context.Context, id, userID primitive.ObjectID, completed bool) (*models.Task, error) {
	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"completed":  completed,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gagal mengubah status task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("gagal menghapus task: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("gagal menghapus task milik user: %w", err)
	}
	return nil
}
