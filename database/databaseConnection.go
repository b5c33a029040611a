package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database holds the mongo client for one deployment. It is constructed once
// in main and handed to the controllers, so nothing in this codebase reaches
// for a shared global client.
type Database struct {
	Client *mongo.Client
	Name   string
}

func Connect(uri string, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Database{Client: client, Name: name}, nil
}

func (db *Database) OpenCollection(collectionName string) *mongo.Collection {
	return db.Client.Database(db.Name).Collection(collectionName)
}

func (db *Database) Disconnect(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}
