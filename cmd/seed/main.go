package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leina1/Beta1/internal/config"
	"github.com/Leina1/Beta1/internal/mongodb"
)

// Prepares the store for first use: creates indexes and upserts the
// initial admin user from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("error connecting to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.Mongo.Database)

	log.Println("Ensuring indexes...")
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("error creating indexes: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("error hashing admin password: %v", err)
	}

	now := time.Now()
	res, err := db.Collection(mongodb.UserCollection).UpdateOne(
		ctx,
		bson.M{"email": cfg.Seed.AdminEmail},
		bson.M{"$setOnInsert": bson.M{
			"fullname":     "Administrator",
			"email":        cfg.Seed.AdminEmail,
			"phone":        "",
			"passwordHash": string(hashed),
			"role":         "admin",
			"createdAt":    now,
			"updatedAt":    now,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("error seeding admin user: %v", err)
	}

	if res.UpsertedCount > 0 {
		log.Println("Admin user created")
	} else {
		log.Println("Admin user already exists")
	}
}
