package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/quillcms/go-services/internal/database"
	"github.com/quillcms/go-services/internal/versioning/service"
)

// One-shot retention sweep, meant to be wired to cron or a scheduler. Each
// run deletes at most one batch of expired snapshots; the scheduler's cadence
// drains larger backlogs.
func main() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "quill"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, mongoURI, 10*time.Second)
	if err != nil {
		log.Fatalf("cannot connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	svc := service.NewMongoService(client.Database(dbName))
	deleted, err := svc.CleanupOldVersions(ctx)
	if err != nil {
		log.Fatalf("retention sweep failed: %v", err)
	}
	log.Printf("retention sweep done: %d snapshots deleted", deleted)
}
