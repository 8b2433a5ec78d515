package routes

import (
	"Backend-GeoAttend/src/controllers"
	"Backend-GeoAttend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// sessionRoutes กำหนดเส้นทางสำหรับ Session API (lecturer-facing)
func sessionRoutes(app *fiber.App) {
	sessionRoutes := app.Group("/sessions")
	sessionRoutes.Use(middleware.AuthJWT)

	sessionRoutes.Post("/", controllers.CreateSession)  // เปิด session ใหม่
	sessionRoutes.Get("/", controllers.GetSessions)     // ดึง session ทั้งหมด
	sessionRoutes.Get("/:id", controllers.GetSessionByID)
	sessionRoutes.Get("/:id/qrcode", controllers.GetSessionQRCode)
	sessionRoutes.Get("/:id/attendance", controllers.GetSessionAttendance)
	sessionRoutes.Put("/:id/deactivate", controllers.DeactivateSession)
	sessionRoutes.Delete("/:id", controllers.DeleteSession)

	// job testing endpoints
	sessionRoutes.Post("/:id/trigger-close", controllers.TriggerCloseSession)
	sessionRoutes.Post("/:id/run-close-now", controllers.RunCloseSessionNow)
}
