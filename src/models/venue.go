package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// GeofenceType ชนิดของ geofence
const (
	GeofenceCircle  = "circle"
	GeofencePolygon = "polygon"
)

// VenueStatus สถานะของสถานที่
const (
	VenueActive      = "active"
	VenueMaintenance = "maintenance"
)

// LatLng a WGS-84 coordinate pair
type LatLng struct {
	Lat float64 `json:"lat" bson:"lat" example:"6.64483"`
	Lng float64 `json:"lng" bson:"lng" example:"3.51347"`
}

// Venue สถานที่จัดคาบเรียน (lecture venue with a geofenced extent)
type Venue struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" example:"Engineering Hall A"`
	Capacity        int                `json:"capacity" bson:"capacity" example:"250"`
	GeofenceType    string             `json:"geofenceType" bson:"geofenceType" example:"circle"`
	Center          LatLng             `json:"center" bson:"center"`
	RadiusMeters    float64            `json:"radiusMeters,omitempty" bson:"radiusMeters,omitempty" example:"25"`
	PolygonVertices []LatLng           `json:"polygonVertices,omitempty" bson:"polygonVertices,omitempty"`
	Status          string             `json:"status" bson:"status" example:"active"`
}

// VenueBoundary คู่ของ venue กับเส้นขอบเขตที่คำนวณแล้ว (for map rendering)
type VenueBoundary struct {
	VenueID primitive.ObjectID `json:"venueId"`
	Name    string             `json:"name"`
	Ring    []LatLng           `json:"ring"`
}
