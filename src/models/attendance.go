package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceRecord บันทึกการเช็คชื่อ 1 รายการต่อ (sessionId, studentId)
type AttendanceRecord struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SessionID      primitive.ObjectID `json:"sessionId" bson:"sessionId"`
	StudentID      string             `json:"studentId" bson:"studentId" example:"65010123"`
	CourseCode     string             `json:"courseCode" bson:"courseCode" example:"CS402"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
	Location       *LatLng            `json:"location,omitempty" bson:"location,omitempty"`
	WithinGeofence *bool              `json:"withinGeofence,omitempty" bson:"withinGeofence,omitempty"`
}

// CheckInRequest payload ที่นิสิตส่งมาตอนเช็คชื่อ
type CheckInRequest struct {
	Code      string  `json:"code" validate:"required" example:"AWD82X9L"`
	StudentID string  `json:"studentId" validate:"required" example:"65010123"`
	Location  *LatLng `json:"location,omitempty"`
}
