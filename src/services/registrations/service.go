package registrations

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Lookup answers the one question the check-in flow asks of the registration
// system: is this student registered for this course. The registry is owned
// by course administration; this core only reads it.
type Lookup interface {
	IsRegistered(ctx context.Context, studentID, courseCode string) (bool, error)
}

// MongoLookup reads the registrations collection maintained by the course
// CRUD screens.
type MongoLookup struct {
	registrations *mongo.Collection
}

func NewMongoLookup(registrations *mongo.Collection) *MongoLookup {
	return &MongoLookup{registrations: registrations}
}

func (m *MongoLookup) IsRegistered(ctx context.Context, studentID, courseCode string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := m.registrations.CountDocuments(ctx, bson.M{
		"studentId":  studentID,
		"courseCode": courseCode,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// StaticLookup คืนค่าตายตัวจาก map (ใช้ในเทสต์)
type StaticLookup map[string][]string // studentID -> course codes

func (s StaticLookup) IsRegistered(_ context.Context, studentID, courseCode string) (bool, error) {
	for _, c := range s[studentID] {
		if c == courseCode {
			return true, nil
		}
	}
	return false, nil
}
