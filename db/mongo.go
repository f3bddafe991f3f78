package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"vb-capital-ai/internal/logger"
	"vb-capital-ai/config"
)

const CollectionAILogs = "ai_logs"

var ErrNotConfigured = errors.New("mongo uri is not configured")

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database. mongo.uri 가 비어 있으면
// ErrNotConfigured 를 반환하고 호출자는 AI 호출 로그 없이 동작한다.
func Init(ctx context.Context, cfg config.MongoConfig) error {
	if cfg.URI == "" {
		return ErrNotConfigured
	}
	var initErr error
	clientOnce.Do(func() {
		dbName := cfg.Database
		if dbName == "" {
			dbName = "vbcapital"
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetAppName("vb-capital-ai"))
		if err != nil {
			initErr = fmt.Errorf("connect mongodb: %w", err)
			return
		}
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			initErr = fmt.Errorf("ping mongodb: %w", err)
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.InfoWithFields("mongodb connected", logger.Fields{"database": dbName})
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// aiLogIndexes: 최근 호출 조회(requested_at desc)와 요청 단위 추적(request_id).
var aiLogIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "requested_at", Value: -1}}, Options: options.Index().SetName("idx_requested_at_desc")},
	{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetName("idx_request_id")},
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	names, err := d.Collection(CollectionAILogs).Indexes().CreateMany(ctx, aiLogIndexes)
	if err != nil {
		return fmt.Errorf("ensure %s indexes: %w", CollectionAILogs, err)
	}
	logger.DebugWithFields("mongodb indexes ensured", logger.Fields{"collection": CollectionAILogs, "indexes": names})
	return nil
}
