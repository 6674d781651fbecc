package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FailedNotificationDocument は送信できなかった通知を後で再送するための記録。
type FailedNotificationDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Target      string             `bson:"target"`
	Payload     map[string]any     `bson:"payload"`
	Error       string             `bson:"error"`
	Attempts    int                `bson:"attempts"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	LastTriedAt time.Time          `bson:"lastTriedAt"`
}

// FailedNotificationRepository は failed_notifications コレクションへの書き込みを担う。
type FailedNotificationRepository struct {
	collection *mongo.Collection
}

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	return &FailedNotificationRepository{collection: db.Collection(collectionName)}
}

// Record は再送待ち (status=pending) として 1 件保存する。
func (r *FailedNotificationRepository) Record(ctx context.Context, target string, payload map[string]any, cause error, attempts int) error {
	now := time.Now().UTC()
	doc := FailedNotificationDocument{
		ID:          primitive.NewObjectID(),
		Target:      target,
		Payload:     payload,
		Attempts:    attempts,
		Status:      "pending",
		CreatedAt:   now,
		LastTriedAt: now,
	}
	if cause != nil {
		doc.Error = cause.Error()
	}
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}
