package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DurationUnit หน่วยของระยะเวลา session
const (
	DurationMinutes = "minutes"
	DurationHours   = "hours"
)

// Session คาบเช็คชื่อของรายวิชา (time-boxed, identified by a short code)
type Session struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CourseCode    string             `json:"courseCode" bson:"courseCode" example:"CS402"`
	CourseName    string             `json:"courseName" bson:"courseName" example:"Distributed Systems"`
	VenueID       primitive.ObjectID `json:"venueId,omitempty" bson:"venueId,omitempty"`
	StartTime     time.Time          `json:"startTime" bson:"startTime"`
	EndTime       time.Time          `json:"endTime" bson:"endTime"`
	Code          string             `json:"code" bson:"code" example:"AWD82X9L"`
	AttendeeCount int                `json:"attendeeCount" bson:"attendeeCount" example:"0"`
	Active        bool               `json:"active" bson:"active"`
	CreatedBy     string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
}

// CreateSessionRequest payload สำหรับเปิด session ใหม่
type CreateSessionRequest struct {
	CourseCode    string `json:"courseCode" validate:"required" example:"CS402"`
	CourseName    string `json:"courseName" validate:"required" example:"Distributed Systems"`
	VenueID       string `json:"venueId" validate:"omitempty,len=24"`
	DurationValue int    `json:"durationValue" validate:"required,gt=0" example:"60"`
	DurationUnit  string `json:"durationUnit" validate:"required,oneof=minutes hours" example:"minutes"`
}

// Duration แปลงค่า duration เป็น time.Duration (minutes×60,000ms / hours×3,600,000ms)
func (r CreateSessionRequest) Duration() time.Duration {
	if r.DurationUnit == DurationHours {
		return time.Duration(r.DurationValue) * time.Hour
	}
	return time.Duration(r.DurationValue) * time.Minute
}
