package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Student นิสิต
type Student struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code    string             `bson:"code" json:"code"` // รหัสนิสิต เช่น 65010123
	Name    string             `bson:"name" json:"name"`
	EngName string             `bson:"engName" json:"engName"`
	Major   string             `bson:"major" json:"major"`
	Year    int                `bson:"year" json:"year"`
}
