package geofence

import (
	"math"
	"testing"

	"Backend-GeoAttend/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var hallA = models.LatLng{Lat: 6.64483, Lng: 3.51347}

func TestCircleToPolygon(t *testing.T) {
	t.Run("ClosedRingWithPointCountPlusOne", func(t *testing.T) {
		ring, err := CircleToPolygon(hallA, 25, 64)
		assert.NoError(t, err)
		assert.Len(t, ring, 65)
		assert.Equal(t, ring[0], ring[len(ring)-1])
	})

	t.Run("EveryVertexAtRadiusDistance", func(t *testing.T) {
		ring, err := CircleToPolygon(hallA, 25, 64)
		assert.NoError(t, err)
		// ทุกจุดต้องห่างจาก center เท่ากับ radius ภายใต้ model เดียวกัน
		for _, p := range ring {
			assert.InDelta(t, 25.0, DistanceMeters(hallA, p), 0.01)
		}
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		_, err := CircleToPolygon(hallA, 0, 64)
		assert.ErrorIs(t, err, ErrInvalidGeometry)

		_, err = CircleToPolygon(hallA, -5, 64)
		assert.ErrorIs(t, err, ErrInvalidGeometry)

		_, err = CircleToPolygon(hallA, 25, 2)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
	})

	t.Run("LongitudeScaledByLatitude", func(t *testing.T) {
		// ยิ่ง latitude สูง offset ของ lng ต้องยิ่งกว้างขึ้น
		nearEquator, err := CircleToPolygon(models.LatLng{Lat: 0.5, Lng: 10}, 100, 4)
		assert.NoError(t, err)
		farNorth, err := CircleToPolygon(models.LatLng{Lat: 60, Lng: 10}, 100, 4)
		assert.NoError(t, err)

		spanAt := func(r Ring, center models.LatLng) float64 {
			maxLng := center.Lng
			for _, p := range r {
				maxLng = math.Max(maxLng, p.Lng)
			}
			return maxLng - center.Lng
		}
		assert.Greater(t,
			spanAt(farNorth, models.LatLng{Lat: 60, Lng: 10}),
			spanAt(nearEquator, models.LatLng{Lat: 0.5, Lng: 10}))
	})
}

func TestPolygonFromVertices(t *testing.T) {
	t.Run("FewerThanThreeVerticesIsNil", func(t *testing.T) {
		assert.Nil(t, PolygonFromVertices(nil))
		assert.Nil(t, PolygonFromVertices([]models.LatLng{{Lat: 1, Lng: 1}}))
		assert.Nil(t, PolygonFromVertices([]models.LatLng{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}))
	})

	t.Run("OpenRingGetsClosed", func(t *testing.T) {
		ring := PolygonFromVertices([]models.LatLng{
			{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1},
		})
		assert.Len(t, ring, 4)
		assert.Equal(t, ring[0], ring[len(ring)-1])
	})

	t.Run("AlreadyClosedRingUnchanged", func(t *testing.T) {
		ring := PolygonFromVertices([]models.LatLng{
			{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 0, Lng: 0},
		})
		assert.Len(t, ring, 4)
	})
}

func TestRingContains(t *testing.T) {
	square := PolygonFromVertices([]models.LatLng{
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 2}, {Lat: 2, Lng: 2}, {Lat: 2, Lng: 0},
	})

	assert.True(t, square.Contains(models.LatLng{Lat: 1, Lng: 1}))
	assert.False(t, square.Contains(models.LatLng{Lat: 3, Lng: 1}))
	assert.False(t, square.Contains(models.LatLng{Lat: -1, Lng: -1}))
}

func TestVenueContains(t *testing.T) {
	t.Run("CircleVenue", func(t *testing.T) {
		venue := models.Venue{
			GeofenceType: models.GeofenceCircle,
			Center:       hallA,
			RadiusMeters: 25,
		}

		inside, err := VenueContains(venue, hallA)
		assert.NoError(t, err)
		assert.True(t, inside)

		// ~33m เหนือ center — นอกรัศมี 25m
		outside, err := VenueContains(venue, models.LatLng{Lat: hallA.Lat + 0.0003, Lng: hallA.Lng})
		assert.NoError(t, err)
		assert.False(t, outside)
	})

	t.Run("PolygonVenue", func(t *testing.T) {
		venue := models.Venue{
			GeofenceType: models.GeofencePolygon,
			PolygonVertices: []models.LatLng{
				{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 0},
			},
		}

		inside, err := VenueContains(venue, models.LatLng{Lat: 0.5, Lng: 0.5})
		assert.NoError(t, err)
		assert.True(t, inside)

		outside, err := VenueContains(venue, models.LatLng{Lat: 1.5, Lng: 0.5})
		assert.NoError(t, err)
		assert.False(t, outside)
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		_, err := VenueContains(models.Venue{GeofenceType: models.GeofenceCircle}, hallA)
		assert.ErrorIs(t, err, ErrInvalidGeometry)

		_, err = VenueContains(models.Venue{GeofenceType: models.GeofencePolygon}, hallA)
		assert.ErrorIs(t, err, ErrInvalidGeometry)

		_, err = VenueContains(models.Venue{GeofenceType: "hexagon"}, hallA)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
	})
}

func TestBoundaryCollection(t *testing.T) {
	venues := []models.Venue{
		{
			ID:           primitive.NewObjectID(),
			Name:         "Engineering Hall A",
			GeofenceType: models.GeofenceCircle,
			Center:       hallA,
			RadiusMeters: 25,
		},
		{
			// radius หาย — ต้องถูกข้าม ไม่ล้มทั้งชุด
			ID:           primitive.NewObjectID(),
			Name:         "Broken Circle",
			GeofenceType: models.GeofenceCircle,
			Center:       hallA,
		},
		{
			ID:           primitive.NewObjectID(),
			Name:         "Science Quad",
			GeofenceType: models.GeofencePolygon,
			PolygonVertices: []models.LatLng{
				{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 1},
			},
		},
	}

	boundaries := BoundaryCollection(venues)
	assert.Len(t, boundaries, 2)
	assert.Equal(t, "Engineering Hall A", boundaries[0].Name)
	assert.Equal(t, "Science Quad", boundaries[1].Name)
	assert.Len(t, boundaries[0].Ring, DefaultCirclePoints+1)
}
