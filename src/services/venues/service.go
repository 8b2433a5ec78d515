package venues

import (
	"context"
	"errors"
	"time"

	"Backend-GeoAttend/src/geofence"
	"Backend-GeoAttend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrVenueNotFound venue ไม่มีอยู่
var ErrVenueNotFound = errors.New("venue not found")

// Service อ่านข้อมูล venue จาก directory ภายนอก
// Venues are created and edited by venue administration; the session and
// check-in core only reads them.
type Service struct {
	venues *mongo.Collection
}

func NewService(venues *mongo.Collection) *Service {
	return &Service{venues: venues}
}

const queryTimeout = 5 * time.Second

// GetVenues ดึง venue ทั้งหมดพร้อม pagination
func (s *Service) GetVenues(ctx context.Context, params models.PaginationParams) ([]models.Venue, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{}
	if params.Search != "" {
		filter = bson.M{"name": bson.M{"$regex": params.Search, "$options": "i"}}
	}

	total, err := s.venues.CountDocuments(ctx, filter)
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

	cursor, err := s.venues.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

// FindByID implements checkin.VenueFinder.
func (s *Service) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var venue models.Venue
	err := s.venues.FindOne(ctx, bson.M{"_id": id}).Decode(&venue)
	if err == mongo.ErrNoDocuments {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

// GetBoundaries คืนเส้นขอบเขตของ venue ที่ active ทั้งหมดสำหรับแสดงบนแผนที่
// Venues with malformed geometry are dropped from the set, never failing the
// whole render.
func (s *Service) GetBoundaries(ctx context.Context) ([]models.VenueBoundary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.venues.Find(ctx, bson.M{"status": models.VenueActive})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, err
	}
	return geofence.BoundaryCollection(venues), nil
}
