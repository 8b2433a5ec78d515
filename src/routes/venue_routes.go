package routes

import (
	"Backend-GeoAttend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// venueRoutes กำหนดเส้นทางสำหรับ Venue API (read-only in this core)
func venueRoutes(app *fiber.App) {
	venueRoutes := app.Group("/venues")

	venueRoutes.Get("/", controllers.GetVenues)                   // ดึง venue ทั้งหมด
	venueRoutes.Get("/boundaries", controllers.GetVenueBoundaries) // เส้นขอบเขตสำหรับแผนที่
	venueRoutes.Get("/:id", controllers.GetVenueByID)
}
