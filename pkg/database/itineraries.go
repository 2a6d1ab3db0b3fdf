package database

import (
	"context"
	"errors"

	"github.com/wayplan/wayplan/pkg/travel"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotConnected = errors.New("mongodb is not configured")
var ErrItineraryNotFound = errors.New("itinerary not found")

const itinerariesCollection = "itineraries"

func SaveItinerary(ctx context.Context, itinerary *travel.Itinerary) error {
	if !Connected() {
		return ErrNotConnected
	}

	_, err := GetCollection(itinerariesCollection).InsertOne(ctx, itinerary)

	return err
}

func GetItinerary(ctx context.Context, id string) (*travel.Itinerary, error) {
	if !Connected() {
		return nil, ErrNotConnected
	}

	var itinerary travel.Itinerary

	err := GetCollection(itinerariesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&itinerary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrItineraryNotFound
	} else if err != nil {
		return nil, err
	}

	return &itinerary, nil
}
