package geofence

import (
	"errors"
	"math"

	"Backend-GeoAttend/src/models"
)

// ErrInvalidGeometry แจ้งว่ารูปทรงของ venue ไม่ถูกต้อง (radius <= 0 หรือ pointCount < 3)
var ErrInvalidGeometry = errors.New("invalid venue geometry")

// metersPerDegreeLat is the equirectangular meters-per-degree constant.
// Venue radii are tens of meters, so the local planar approximation is enough;
// no great-circle correction is applied.
const metersPerDegreeLat = 110574.0

// Ring is a closed polygon boundary: the first and last vertices coincide.
type Ring []models.LatLng

// CircleToPolygon approximates a circular geofence as a closed ring of
// pointCount vertices evenly spaced by angle around center. The longitude
// offset is scaled by 1/cos(lat) to correct for meridian convergence.
func CircleToPolygon(center models.LatLng, radiusMeters float64, pointCount int) (Ring, error) {
	if radiusMeters <= 0 || pointCount < 3 {
		return nil, ErrInvalidGeometry
	}

	latRad := center.Lat * math.Pi / 180
	ring := make(Ring, 0, pointCount+1)
	for i := 0; i < pointCount; i++ {
		theta := 2 * math.Pi * float64(i) / float64(pointCount)
		dLat := radiusMeters * math.Sin(theta) / metersPerDegreeLat
		dLng := radiusMeters * math.Cos(theta) / (metersPerDegreeLat * math.Cos(latRad))
		ring = append(ring, models.LatLng{Lat: center.Lat + dLat, Lng: center.Lng + dLng})
	}
	// ปิด ring โดยซ้ำจุดแรกเป็นจุดสุดท้าย
	ring = append(ring, ring[0])
	return ring, nil
}

// PolygonFromVertices builds a closed ring from venue-defined vertices.
// Fewer than 3 vertices is a recoverable condition: the venue simply has no
// renderable boundary, so nil is returned instead of an error.
func PolygonFromVertices(vertices []models.LatLng) Ring {
	if len(vertices) < 3 {
		return nil
	}
	ring := make(Ring, len(vertices), len(vertices)+1)
	copy(ring, vertices)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// DefaultCirclePoints จำนวนจุดมาตรฐานของวงกลม
const DefaultCirclePoints = 64

// BoundaryCollection maps each venue through the generator matching its
// geofence type. Venues with malformed or missing geometry are skipped, never
// aborting the rest of the set. Output order follows input order.
func BoundaryCollection(venues []models.Venue) []models.VenueBoundary {
	boundaries := make([]models.VenueBoundary, 0, len(venues))
	for _, v := range venues {
		var ring Ring
		switch v.GeofenceType {
		case models.GeofenceCircle:
			r, err := CircleToPolygon(v.Center, v.RadiusMeters, DefaultCirclePoints)
			if err != nil {
				continue
			}
			ring = r
		case models.GeofencePolygon:
			ring = PolygonFromVertices(v.PolygonVertices)
		}
		if ring == nil {
			continue
		}
		boundaries = append(boundaries, models.VenueBoundary{
			VenueID: v.ID,
			Name:    v.Name,
			Ring:    ring,
		})
	}
	return boundaries
}

// Contains reports whether p falls inside the ring, using the even-odd
// ray-casting rule on raw lat/lng coordinates.
func (r Ring) Contains(p models.LatLng) bool {
	if len(r) < 4 {
		return false
	}
	inside := false
	for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
		a, b := r[i], r[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) &&
			p.Lng < (b.Lng-a.Lng)*(p.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lng {
			inside = !inside
		}
	}
	return inside
}

// DistanceMeters returns the distance between two points under the same
// equirectangular model used by CircleToPolygon, so containment checks agree
// with the rendered boundary.
func DistanceMeters(a, b models.LatLng) float64 {
	latRad := a.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * metersPerDegreeLat
	dLng := (b.Lng - a.Lng) * metersPerDegreeLat * math.Cos(latRad)
	return math.Hypot(dLat, dLng)
}

// VenueContains ตรวจว่า p อยู่ในขอบเขตของ venue หรือไม่
// Circle venues compare distance against the radius directly; polygon venues
// use the ray-casting test on the closed ring.
func VenueContains(v models.Venue, p models.LatLng) (bool, error) {
	switch v.GeofenceType {
	case models.GeofenceCircle:
		if v.RadiusMeters <= 0 {
			return false, ErrInvalidGeometry
		}
		return DistanceMeters(v.Center, p) <= v.RadiusMeters, nil
	case models.GeofencePolygon:
		ring := PolygonFromVertices(v.PolygonVertices)
		if ring == nil {
			return false, ErrInvalidGeometry
		}
		return ring.Contains(p), nil
	}
	return false, ErrInvalidGeometry
}
