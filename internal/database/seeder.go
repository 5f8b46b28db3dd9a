// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"freight-shipment-api-server/internal/auth"
	"freight-shipment-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin makes sure an admin account exists so the ownership-gated
// endpoints are usable on a fresh database.
func SeedAdmin(db *mongo.Database) error {
	userCollection := db.Collection("users")
	adminUsername := "admin"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"username": adminUsername})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("adminpassword")
	if err != nil {
		return err
	}

	admin := models.User{
		Username: adminUsername,
		Password: hashedPassword,
		Fullname: "Admin",
		IsAdmin:  true,
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}
