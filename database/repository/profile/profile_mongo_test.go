package profileRepo

import (
	"context"
	"errors"
	"testing"

	"petcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoProfileLookup(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	for role, coll := range ProfileCollections {
		mt.Run(string(role), func(mt *mtest.T) {
			repo := NewMongoProfileRepo(mt.DB)
			mt.AddMockResponses(mtest.CreateCursorResponse(0, "petcare."+coll, mtest.FirstBatch, bson.D{
				{Key: "id", Value: "profile-1"},
				{Key: "ownerAccountId", Value: "acct-1"},
				{Key: "isVerified", Value: true},
				{Key: "status", Value: "ACTIVE"},
			}))

			profile, err := repo.FindByOwnerAndRole(context.Background(), "acct-1", role)
			if err != nil {
				mt.Fatalf("find: %v", err)
			}
			if profile.ID != "profile-1" || !profile.Usable() {
				mt.Fatalf("profile = %+v", profile)
			}
			if profile.RoleType != role {
				mt.Fatalf("roleType = %q, want %q from the collection", profile.RoleType, role)
			}

			cmd := mt.GetStartedEvent().Command
			if got := cmd.Lookup("find").StringValue(); got != coll {
				mt.Fatalf("find ran on %q, want %q", got, coll)
			}
			if owner := cmd.Lookup("filter", "ownerAccountId").StringValue(); owner != "acct-1" {
				mt.Fatalf("filter ownerAccountId = %q", owner)
			}
		})
	}

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewMongoProfileRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "petcare.pet_sitter_profiles", mtest.FirstBatch))

		_, err := repo.FindByOwnerAndRole(context.Background(), "acct-1", models.RolePetSitter)
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("role without profiles", func(mt *mtest.T) {
		repo := NewMongoProfileRepo(mt.DB)

		_, err := repo.FindByOwnerAndRole(context.Background(), "acct-1", models.RolePetOwner)
		if err == nil || errors.Is(err, ErrNotFound) {
			mt.Fatalf("err = %v, want an unknown-role error", err)
		}
		if evt := mt.GetStartedEvent(); evt != nil {
			mt.Fatalf("unexpected %q command for a role without a collection", evt.CommandName)
		}
	})
}
