package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes สร้าง index ที่จำเป็นต่อระบบเช็คชื่อ
// The attendance unique index is what makes check-in idempotent per
// (sessionId, studentId) even under concurrent submissions.
func EnsureIndexes(ctx context.Context) error {
	_, err := AttendanceCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "studentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// lookup เช็คชื่อทำงานด้วย code เสมอ
	_, err = SessionCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "code", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = RegistrationCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "courseCode", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	log.Println("✅ MongoDB indexes ensured")
	return nil
}
