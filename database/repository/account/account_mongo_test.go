package accountRepo

import (
	"context"
	"errors"
	"testing"

	"petcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoAccountGetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewMongoAccountRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "petcare.users", mtest.FirstBatch, bson.D{
			{Key: "id", Value: "user-1"},
			{Key: "email", Value: "user-1@example.com"},
			{Key: "role", Value: "PET_SITTER"},
			{Key: "status", Value: "SUSPENDED"},
		}))

		account, err := repo.GetByID(context.Background(), "user-1")
		if err != nil {
			mt.Fatalf("get: %v", err)
		}
		if account.Role != models.RolePetSitter || account.Status != models.AccountSuspended {
			mt.Fatalf("account = %+v", account)
		}

		cmd := mt.GetStartedEvent().Command
		if coll := cmd.Lookup("find").StringValue(); coll != "users" {
			mt.Fatalf("find ran on %q", coll)
		}
		if id := cmd.Lookup("filter", "id").StringValue(); id != "user-1" {
			mt.Fatalf("filter id = %q", id)
		}
		for _, field := range []string{"id", "email", "role", "status"} {
			if _, err := cmd.LookupErr("projection", field); err != nil {
				mt.Fatalf("projection is missing %q", field)
			}
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewMongoAccountRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "petcare.users", mtest.FirstBatch))

		if _, err := repo.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
