package database

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DBName = "GeoAttendDB"

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	VenueCollection        *mongo.Collection
	SessionCollection      *mongo.Collection
	AttendanceCollection   *mongo.Collection
	RegistrationCollection *mongo.Collection
	StudentCollection      *mongo.Collection
	UserCollection         *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB() error {

	// โหลดค่า Environment Variables จากไฟล์ .env
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	once.Do(func() { // ✅ Run only once
		clientOptions := options.Client().ApplyURI(mongoURI)

		client, connectErr = mongo.Connect(context.TODO(), clientOptions)
		if connectErr != nil {
			log.Fatal("❌ Failed to connect to MongoDB:", connectErr)
			return
		}

		connectErr = client.Ping(context.TODO(), readpref.Primary())
		if connectErr != nil {
			log.Fatal("❌ MongoDB ping failed:", connectErr)
			return
		}

		db := client.Database(DBName)
		VenueCollection = db.Collection("venues")
		SessionCollection = db.Collection("sessions")
		AttendanceCollection = db.Collection("attendance")
		RegistrationCollection = db.Collection("registrations")
		StudentCollection = db.Collection("students")
		UserCollection = db.Collection("users")

		log.Println("✅ MongoDB connected successfully")

		if err := EnsureIndexes(context.TODO()); err != nil {
			log.Println("⚠️ Failed to ensure indexes:", err)
		}
	})

	return connectErr
}

// GetCollection รับ Collection จาก MongoDB
func GetCollection(dbName, collectionName string) *mongo.Collection {
	if client == nil {
		log.Fatal("❌ MongoDB client is nil")
	}
	return client.Database(dbName).Collection(collectionName)
}
