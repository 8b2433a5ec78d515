package sessions

import (
	"context"
	"time"

	"Backend-GeoAttend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists sessions and attendance in MongoDB. Relies on the
// unique (sessionId, studentId) index on the attendance collection for the
// idempotency guarantee.
type MongoStore struct {
	sessions   *mongo.Collection
	attendance *mongo.Collection
}

func NewMongoStore(sessions, attendance *mongo.Collection) *MongoStore {
	return &MongoStore{sessions: sessions, attendance: attendance}
}

const queryTimeout = 5 * time.Second

func (m *MongoStore) Insert(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err := m.sessions.InsertOne(ctx, session)
	return err
}

func (m *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var session models.Session
	err := m.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *MongoStore) FindByCode(ctx context.Context, code string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	cursor, err := m.sessions.Find(ctx, bson.M{"code": code}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (m *MongoStore) List(ctx context.Context, params models.PaginationParams) ([]models.Session, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{}
	if params.Search != "" {
		filter = bson.M{"$or": []bson.M{
			{"courseCode": bson.M{"$regex": params.Search, "$options": "i"}},
			{"courseName": bson.M{"$regex": params.Search, "$options": "i"}},
		}}
	}

	total, err := m.sessions.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	order := 1
	if params.Order == "desc" {
		order = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: params.SortBy, Value: order}}).
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit))

	cursor, err := m.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (m *MongoStore) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := m.sessions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"active": active}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := m.sessions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSessionNotFound
	}
	// cascade: attendance records are owned by the session
	_, err = m.attendance.DeleteMany(ctx, bson.M{"sessionId": id})
	return err
}

// ClaimAttendance inserts the attendance record and bumps the counter in one
// logical step. The unique index makes the insert the linearization point:
// two concurrent check-ins for the same student race on the insert and only
// the winner increments.
func (m *MongoStore) ClaimAttendance(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.attendance.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = m.sessions.UpdateOne(ctx,
		bson.M{"_id": record.SessionID},
		bson.M{"$inc": bson.M{"attendeeCount": 1}},
	)
	return true, err
}

func (m *MongoStore) ListAttendance(ctx context.Context, sessionID primitive.ObjectID) ([]models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := m.attendance.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
