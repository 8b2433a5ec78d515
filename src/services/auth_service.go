package services

import (
	"context"
	"errors"
	"strings"

	"Backend-GeoAttend/src/database"
	"Backend-GeoAttend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func AuthenticateUser(email, password string) (*models.User, error) {
	ctx := context.Background()

	var dbUser models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&dbUser)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	// ตรวจสอบ password
	if err := bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	result := &models.User{
		ID:    dbUser.ID,
		Name:  dbUser.Name,
		Email: dbUser.Email,
		Role:  dbUser.Role,
		RefID: dbUser.RefID,
	}

	// 🔍 ดึงชื่อจาก profile ของนิสิต
	if dbUser.Role == "Student" {
		var student models.Student
		if err := database.StudentCollection.FindOne(ctx, bson.M{"_id": dbUser.RefID}).Decode(&student); err == nil {
			result.Name = student.Name
		}
	}

	return result, nil
}
