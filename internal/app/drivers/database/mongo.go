package database

import (
	"context"
	"fmt"
	"konsulin-assessment-engine/internal/app/config"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func mongoURI(driverConfig *config.DriverConfig) string {
	if driverConfig.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", driverConfig.MongoDB.Host, driverConfig.MongoDB.Port)
	}
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		driverConfig.MongoDB.Username,
		driverConfig.MongoDB.Password,
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
}

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), driverConfig.MongoDB.ConnectTimeout)
	defer cancel()

	dbOptions := options.Client().
		ApplyURI(mongoURI(driverConfig)).
		SetAppName("assessment-engine").
		SetConnectTimeout(driverConfig.MongoDB.ConnectTimeout).
		SetServerSelectionTimeout(driverConfig.MongoDB.ConnectTimeout)
	if driverConfig.MongoDB.MaxPoolSize > 0 {
		dbOptions.SetMaxPoolSize(driverConfig.MongoDB.MaxPoolSize)
	}
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}
