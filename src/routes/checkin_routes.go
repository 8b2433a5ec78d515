package routes

import (
	"Backend-GeoAttend/src/controllers"
	"Backend-GeoAttend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// checkInRoutes กำหนดเส้นทางสำหรับ Check-in API (student-facing)
func checkInRoutes(app *fiber.App) {
	checkIn := app.Group("/checkin")
	checkIn.Use(middleware.AuthJWT)

	checkIn.Post("/", controllers.StudentCheckIn)
}
