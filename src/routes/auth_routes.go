package routes

import (
	"Backend-GeoAttend/src/controllers"
	"Backend-GeoAttend/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนด route สำหรับ auth (login/logout)
func authRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/login", controllers.LoginUser) // 🔐 login
	auth.Post("/logout", middleware.AuthJWT, controllers.LogoutUser)
}
