package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wayplan/wayplan/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultConnectionString = "mongodb://localhost:27017/"
const defaultDatabase = "wayplan"

// Connect sets up the shared MongoDB instance used for itinerary storage.
// MongoDB is optional: with WAYPLAN_MONGODB_CONNECTION unset, itineraries
// are only written to the output directory.
func Connect() error {
	env := util.GetEnvironmentVariables()

	if env["WAYPLAN_MONGODB_CONNECTION"] == "" {
		log.Info().Msg("Skipping MongoDB setup")
		return nil
	}

	connectionString := env["WAYPLAN_MONGODB_CONNECTION"]
	if connectionString == "" {
		connectionString = defaultConnectionString
	}

	dbName := defaultDatabase
	if env["WAYPLAN_MONGODB_DATABASE"] != "" {
		dbName = env["WAYPLAN_MONGODB_DATABASE"]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	log.Info().Str("database", dbName).Msg("MongoDB client setup")

	return nil
}

// Connected reports whether a MongoDB instance is available.
func Connected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
