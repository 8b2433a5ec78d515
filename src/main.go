package main

import (
	_ "Backend-GeoAttend/docs"
	"Backend-GeoAttend/src/controllers"
	"Backend-GeoAttend/src/database"
	"Backend-GeoAttend/src/jobs"
	"Backend-GeoAttend/src/routes"
	"Backend-GeoAttend/src/services"
	"Backend-GeoAttend/src/services/checkin"
	"Backend-GeoAttend/src/services/registrations"
	"Backend-GeoAttend/src/services/sessions"
	"Backend-GeoAttend/src/services/venues"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {

	// เชื่อมต่อกับ MongoDB
	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	// Redis + Asynq (optional: ไม่มี REDIS_URI ก็รันต่อได้ แต่ไม่มี auto-close)
	database.InitRedis()
	database.InitAsynq()

	// wire services
	store := sessions.NewMongoStore(database.SessionCollection, database.AttendanceCollection)

	var sessionOpts []sessions.Option
	if database.AsynqClient != nil {
		scheduler := sessions.NewCloseScheduler(database.AsynqClient, database.RedisURI)
		sessionOpts = append(sessionOpts, sessions.WithCloseScheduler(scheduler))
	}
	sessionService := sessions.NewService(store, sessionOpts...)

	venueService := venues.NewService(database.VenueCollection)
	regLookup := registrations.NewMongoLookup(database.RegistrationCollection)

	checkinCfg := checkin.Config{
		RequireLocation: os.Getenv("CHECKIN_REQUIRE_LOCATION") == "true",
	}
	if v := os.Getenv("CHECKIN_LOCATION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			checkinCfg.LocationTimeout = d
		}
	}
	verifier := checkin.NewVerifier(sessionService, regLookup, nil, venueService, checkinCfg)

	controllers.Init(sessionService, venueService, regLookup, verifier)

	// worker สำหรับปิด session อัตโนมัติเมื่อถึง endTime
	if database.RedisURI != "" {
		go func() {
			if err := jobs.StartWorker(database.RedisURI); err != nil {
				log.Println("⚠️ Asynq worker stopped:", err)
			}
		}()
	}

	// seed ข้อมูล dev (venue + user ตัวอย่าง) เมื่อเปิด flag
	if os.Getenv("SEED_DEV_DATA") == "true" {
		if _, err := services.SeedDevData(); err != nil {
			log.Println("⚠️ Failed to seed dev data:", err)
		}
	}

	// สร้าง app instance
	app := fiber.New()

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// QR code images ที่ generate ไว้
	app.Static("/public", "./public")

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app)

	// get url from .env
	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888" // ใช้ 8888 เป็นค่าเริ่มต้น
	}

	// เริ่มเซิร์ฟเวอร์
	log.Println("🚀 Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}

}
