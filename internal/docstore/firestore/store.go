// Package firestore implements the document store gateway on Cloud Firestore.
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Config struct {
	ProjectID       string
	DatabaseID      string
	CredentialsFile string
}

type Store struct {
	client *firestore.Client
	log    *zap.Logger
}

// New dials Firestore. FIRESTORE_EMULATOR_HOST is honoured by the client
// library itself.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var (
		client *firestore.Client
		err    error
	)
	if dbID := strings.TrimSpace(cfg.DatabaseID); dbID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, dbID, opts...)
	} else {
		client, err = firestore.NewClient(ctx, projectID, opts...)
	}
	if err != nil {
		return nil, docstore.Unavailable("firestore connect", err)
	}

	log.Info("firestore client ready", zap.String("project_id", projectID), zap.String("database_id", cfg.DatabaseID))
	return &Store{client: client, log: log}, nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, doc)
	if err != nil {
		return "", mapError("insert", collection, "", err)
	}
	return ref.ID, nil
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	ref := s.client.Collection(collection).Doc(id)
	if ref == nil {
		return nil, docstore.NotFound(collection, id)
	}
	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, mapError("get", collection, id, err)
	}
	return snap.Data(), nil
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	iter := s.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	out := make([]docstore.Snapshot, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, mapError("list", collection, "", err)
		}
		out = append(out, docstore.Snapshot{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

// Update replaces the document inside a transaction so a concurrent delete
// surfaces as not found instead of silently recreating the document.
func (s *Store) Update(ctx context.Context, collection, id string, doc docstore.Document) error {
	ref := s.client.Collection(collection).Doc(id)
	if ref == nil {
		return docstore.NotFound(collection, id)
	}
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, doc)
	}, firestore.MaxAttempts(1))
	if err != nil {
		return mapError("update", collection, id, err)
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) error {
	ref := s.client.Collection(collection).Doc(id)
	if ref == nil {
		return docstore.NotFound(collection, id)
	}
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		return mapError("delete", collection, id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func mapError(op, collection, id string, err error) error {
	if status.Code(err) == codes.NotFound {
		return docstore.NotFound(collection, id)
	}
	return docstore.Unavailable("firestore "+op, err)
}

var _ docstore.Gateway = (*Store)(nil)
