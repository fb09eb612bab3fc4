package userRepo

import (
	"context"
	"time"

	"oneday/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collectionName = "users"

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(client *mongo.Client, dbName string) UserRepository {
	coll := client.Database(dbName).Collection(collectionName)
	repo := &MongoUserRepo{client: client, coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("userRepo: failed to create indexes", zap.Error(err))
	}
	return repo
}

// withTimeout bounds a repository call.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
