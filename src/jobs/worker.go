package jobs

import (
	"context"
	"encoding/json"
	"log"

	"Backend-GeoAttend/src/database"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCloseSessionTask flips a session's active flag at its end time.
// Expiry is computed from endTime either way; this just keeps the stored flag
// honest for dashboard queries.
func HandleCloseSessionTask(ctx context.Context, t *asynq.Task) error {
	var payload SessionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	id, err := primitive.ObjectIDFromHex(payload.SessionID)
	if err != nil {
		log.Println("❌ Invalid session id in payload:", payload.SessionID)
		return err
	}

	// ✅ ตรวจสอบว่า session ยังมีอยู่ไหม
	var session bson.M
	err = database.SessionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Println("⚠️ Session not found. Possibly deleted. Skipping task:", id.Hex())
			return nil // ✅ ไม่ถือว่า error
		}
		log.Println("❌ Failed to find session:", err)
		return err
	}

	_, err = database.SessionCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		log.Println("❌ Failed to close session:", err)
		return err
	}

	log.Println("✅ Session closed:", id.Hex())
	return nil
}

// StartWorker runs the asynq worker loop. Call from main in a goroutine when
// Redis is configured.
func StartWorker(redisURI string) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCloseSession, HandleCloseSessionTask)

	log.Println("🚀 Asynq worker started")
	return srv.Run(mux)
}
