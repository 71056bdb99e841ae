package accountRepo

import (
	"context"
	"errors"
	"fmt"

	"petcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepo implements AccountRepository over the users collection.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo(db *mongo.Database) AccountRepository {
	return &MongoAccountRepo{coll: db.Collection("users")}
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	opts := options.FindOne().SetProjection(bson.M{"id": 1, "email": 1, "role": 1, "status": 1})
	err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account with id %s: %w", id, err)
	}
	return &account, nil
}
