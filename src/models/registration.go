package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Registration การลงทะเบียนเรียนของนิสิตในรายวิชา
type Registration struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StudentID  string             `json:"studentId" bson:"studentId" example:"65010123"`
	CourseCode string             `json:"courseCode" bson:"courseCode" example:"CS402"`
	Semester   string             `json:"semester,omitempty" bson:"semester,omitempty" example:"2025/2"`
}
