// Package backends selects, opens and closes the configured document store.
package backends

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fbrinvoice/internal/config"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/firestore"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/gormstore"
	"github.com/smallbiznis/fbrinvoice/internal/docstore/redisstore"
	"github.com/smallbiznis/fbrinvoice/internal/migration"
	"github.com/smallbiznis/fbrinvoice/pkg/db"
	"go.uber.org/zap"
)

// Open returns the raw gateway for cfg.DocStore.Backend.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger, node *snowflake.Node) (docstore.Gateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.DocStore.Backend {
	case docstore.BackendSQL:
		return openSQL(ctx, cfg, log, node)
	case docstore.BackendRedis:
		client := redisstore.NewClient(redisstore.Config{
			Addr:     cfg.DocStore.RedisAddr,
			Password: cfg.DocStore.RedisPassword,
			DB:       cfg.DocStore.RedisDB,
		})
		log.Info("redis document store selected", zap.String("addr", cfg.DocStore.RedisAddr))
		return redisstore.New(client, cfg.DocStore.RedisKeyPrefix, log.Named("docstore.redis")), nil
	case docstore.BackendFirestore, "":
		return firestore.New(ctx, firestore.Config{
			ProjectID:       cfg.DocStore.FirestoreProjectID,
			DatabaseID:      cfg.DocStore.FirestoreDatabaseID,
			CredentialsFile: cfg.DocStore.FirestoreCredentialsFile,
		}, log.Named("docstore.firestore"))
	default:
		return nil, fmt.Errorf("unsupported document store backend %q", cfg.DocStore.Backend)
	}
}

func openSQL(ctx context.Context, cfg config.Config, log *zap.Logger, node *snowflake.Node) (docstore.Gateway, error) {
	if node == nil {
		var err error
		if node, err = snowflake.NewNode(cfg.DocStore.NodeID); err != nil {
			return nil, err
		}
	}

	dbCfg := db.FromAppConfig(cfg)
	if cfg.DBMigrate && dbCfg.Type == "postgres" {
		if err := migration.RunPostgres(db.PostgresURL(dbCfg), log); err != nil {
			return nil, docstore.Unavailable("sql migrate", err)
		}
	}

	conn, err := db.Open(dbCfg, log)
	if err != nil {
		return nil, docstore.Unavailable("sql connect", err)
	}

	store := gormstore.New(conn, node, log.Named("docstore.sql"), gormstore.WithOwnedDB())
	if cfg.DBMigrate && dbCfg.Type != "postgres" {
		if err := store.AutoMigrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}
