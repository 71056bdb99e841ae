package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileCollections maps each business role to the collection holding its profiles.
var ProfileCollections = map[models.Role]string{
	models.RolePetSitter: "pet_sitter_profiles",
	models.RolePetHotel:  "pet_hotel_profiles",
	models.RolePetSchool: "pet_school_profiles",
	models.RoleVendor:    "vendor_profiles",
}

// MongoProfileRepo implements ProfileRepository with one collection per role.
type MongoProfileRepo struct {
	colls map[models.Role]*mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo(db *mongo.Database) *MongoProfileRepo {
	colls := make(map[models.Role]*mongo.Collection, len(ProfileCollections))
	for role, name := range ProfileCollections {
		colls[role] = db.Collection(name)
	}
	return &MongoProfileRepo{colls: colls}
}

func (r *MongoProfileRepo) FindByOwnerAndRole(ctx context.Context, accountID string, roleType models.Role) (*models.BusinessProfile, error) {
	coll, ok := r.colls[roleType]
	if !ok {
		return nil, fmt.Errorf("no profile collection for role %s", roleType)
	}

	var profile models.BusinessProfile
	err := coll.FindOne(ctx, bson.M{"ownerAccountId": accountID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s profile for account %s: %w", roleType, accountID, err)
	}
	if profile.RoleType == "" {
		profile.RoleType = roleType
	}
	return &profile, nil
}

// EnsureIndexes creates the unique owner index on every profile collection.
func (r *MongoProfileRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for role, coll := range r.colls {
		indexes := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "ownerAccountId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s profile indexes: %w", role, err)
		}
	}
	return nil
}
