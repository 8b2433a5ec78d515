package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"Backend-GeoAttend/src/database"
	"Backend-GeoAttend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// SeedUser represents a user to be seeded
type SeedUser struct {
	Email string
	Role  string // "Lecturer" or "Student"
	Name  string
	Code  string
	Major string
	Year  int
}

// GeneratedPassword stores email and its generated password
type GeneratedPassword struct {
	Email    string
	Password string
	Role     string
}

// generateRandomPassword สร้างรหัสผ่านแบบสุ่ม
func generateRandomPassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	password := make([]byte, length)

	for i := range password {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		password[i] = charset[num.Int64()]
	}

	return string(password), nil
}

// hashPassword แปลงรหัสผ่านเป็น bcrypt hash
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// SeedDevData เติมข้อมูลตัวอย่างสำหรับ dev: users, students, venues, registrations
// Safe to run repeatedly: existing documents are left alone.
func SeedDevData() ([]GeneratedPassword, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seedUsers := []SeedUser{
		{Email: "lecturer@geoattend.dev", Role: "Lecturer", Name: "Dr. Example"},
		{Email: "student@geoattend.dev", Role: "Student", Name: "Test Student", Code: "65010123", Major: "CS", Year: 3},
	}

	var generated []GeneratedPassword
	for _, su := range seedUsers {
		count, err := database.UserCollection.CountDocuments(ctx, bson.M{"email": su.Email})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}

		password, err := generateRandomPassword(12)
		if err != nil {
			return nil, err
		}
		hash, err := hashPassword(password)
		if err != nil {
			return nil, err
		}

		refID := primitive.NewObjectID()
		if su.Role == "Student" {
			student := models.Student{ID: refID, Code: su.Code, Name: su.Name, Major: su.Major, Year: su.Year}
			if _, err := database.StudentCollection.InsertOne(ctx, student); err != nil {
				return nil, err
			}
			// นิสิตตัวอย่างลงทะเบียน CS402 ไว้ทดสอบ check-in
			reg := models.Registration{StudentID: su.Code, CourseCode: "CS402", Semester: "2025/2"}
			if _, err := database.RegistrationCollection.InsertOne(ctx, reg); err != nil {
				return nil, err
			}
		}

		user := models.User{Email: su.Email, Password: hash, Role: su.Role, RefID: refID}
		if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
			return nil, err
		}
		generated = append(generated, GeneratedPassword{Email: su.Email, Password: password, Role: su.Role})
	}

	if err := seedVenues(ctx); err != nil {
		return nil, err
	}

	log.Printf("✅ Seeded %d users", len(generated))
	return generated, nil
}

func seedVenues(ctx context.Context) error {
	count, err := database.VenueCollection.CountDocuments(ctx, bson.M{})
	if err != nil || count > 0 {
		return err
	}

	venues := []interface{}{
		models.Venue{
			Name:         "Engineering Hall A",
			Capacity:     250,
			GeofenceType: models.GeofenceCircle,
			Center:       models.LatLng{Lat: 6.64483, Lng: 3.51347},
			RadiusMeters: 25,
			Status:       models.VenueActive,
		},
		models.Venue{
			Name:         "Science Quad",
			Capacity:     400,
			GeofenceType: models.GeofencePolygon,
			Center:       models.LatLng{Lat: 6.6452, Lng: 3.5141},
			PolygonVertices: []models.LatLng{
				{Lat: 6.6450, Lng: 3.5139},
				{Lat: 6.6454, Lng: 3.5139},
				{Lat: 6.6454, Lng: 3.5143},
				{Lat: 6.6450, Lng: 3.5143},
			},
			Status: models.VenueActive,
		},
	}

	if _, err := database.VenueCollection.InsertMany(ctx, venues); err != nil {
		return fmt.Errorf("seed venues: %w", err)
	}
	log.Println("✅ Seeded venues")
	return nil
}
