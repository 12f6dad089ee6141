package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseName is the Mongo database backing waitlist, measurements and
// try-on records.
const DatabaseName = "fitcheck"

var Client *mongo.Client

// ConnectMongo initializes the MongoDB connection
func ConnectMongo(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}

	Client = client
	logrus.Info("Connected to MongoDB")
	return nil
}

// GetCollection returns a handle to a collection in the fitcheck database
func GetCollection(collectionName string) *mongo.Collection {
	if Client == nil {
		logrus.Fatal("MongoDB client is not initialized")
	}
	return Client.Database(DatabaseName).Collection(collectionName)
}
