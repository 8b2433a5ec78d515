package controllers

import (
	"strings"
	"time"

	"Backend-GeoAttend/src/services"
	"Backend-GeoAttend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// LoginUser - สำหรับ login ทั้ง lecturer และ student
func LoginUser(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
			"code":  "MISSING_CREDENTIALS",
		})
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
			"code":  "INVALID_CREDENTIALS",
		})
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Token generation failed",
			"code":  "TOKEN_ERROR",
		})
	}

	// refresh token เก็บใน Redis (ข้ามถ้าไม่มี Redis ใน dev mode)
	refreshToken := utils.GenerateRandomString(64)
	if err := utils.StoreRefreshToken(user.ID.Hex(), refreshToken, 7*24*time.Hour); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to persist refresh token",
			"code":  "TOKEN_ERROR",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"expiresIn":    int((24 * time.Hour).Seconds()),
		"user": fiber.Map{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"message": "Login successful",
	})
}

// LogoutUser - blacklist access token ปัจจุบัน และลบ refresh token
func LogoutUser(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	if userID != "" {
		_ = utils.DeleteRefreshToken(userID)
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		_ = utils.BlacklistToken(token, 24*time.Hour)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}
