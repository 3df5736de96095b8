package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	UserCollection         = "users"
	AttendanceCollection   = "attendances"
	LeaveRequestCollection = "leave_requests"
	TaskCollection         = "tasks"
	QRCodeCollection       = "qr_codes"
)

// ConnectMongo membuka koneksi dan memastikan server bisa di-ping. Client
// yang dikembalikan dimiliki caller; tutup dengan DisconnectMongo saat
// shutdown.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGOSTRING belum di setting di env. coba setting dulu")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB!")
	return client, nil
}

// InitIndexes membuat index yang menjaga invariant data:
//   - attendances: unik per (user_id, date) — check-in kedua di hari yang
//     sama gagal dengan duplicate key;
//   - users: employee_id dan email unik.
func InitIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AttendanceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_date"),
	})
	if err != nil {
		return fmt.Errorf("gagal membuat index attendances: %w", err)
	}

	_, err = db.Collection(UserCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_employee_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	})
	if err != nil {
		return fmt.Errorf("gagal membuat index users: %w", err)
	}

	_, err = db.Collection(QRCodeCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_qr_code"),
	})
	if err != nil {
		return fmt.Errorf("gagal membuat index qr_codes: %w", err)
	}

	return nil
}

func DisconnectMongo(client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(context.Background()); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
		return
	}
	log.Println("Disconnect from MongoDB")
}
