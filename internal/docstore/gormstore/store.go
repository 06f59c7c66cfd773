// Package gormstore implements the document store gateway on a SQL table
// holding one JSON body per document.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"github.com/smallbiznis/fbrinvoice/pkg/db"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document is the row shape of the documents table.
type Document struct {
	Collection string         `gorm:"primaryKey;size:128;index:idx_documents_collection_created_at,priority:1"`
	ID         string         `gorm:"primaryKey;size:64"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_documents_collection_created_at,priority:2"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (Document) TableName() string { return "documents" }

type Store struct {
	db     *gorm.DB
	node   *snowflake.Node
	log    *zap.Logger
	ownsDB bool
}

type Option func(*Store)

// WithOwnedDB makes Close release the connection pool.
func WithOwnedDB() Option {
	return func(s *Store) { s.ownsDB = true }
}

func New(conn *gorm.DB, node *snowflake.Node, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{db: conn, node: node, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AutoMigrate creates the documents table for dialects that are not managed
// by the embedded postgres migrations.
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Document{}); err != nil {
		return s.fail("migrate", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	row := Document{
		Collection: collection,
		ID:         s.node.Generate().String(),
		Data:       datatypes.JSON(body),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", s.fail("insert", err)
	}
	return row.ID, nil
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	var row Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, docstore.NotFound(collection, id)
	}
	if err != nil {
		return nil, s.fail("get", err)
	}
	doc, err := decode(row.Data)
	if err != nil {
		return nil, docstore.Unavailable("sql get", err)
	}
	return doc, nil
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	var rows []Document
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, s.fail("list", err)
	}

	out := make([]docstore.Snapshot, 0, len(rows))
	for _, row := range rows {
		data, err := decode(row.Data)
		if err != nil {
			s.log.Warn("skipping undecodable document", zap.String("collection", collection), zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, docstore.Snapshot{ID: row.ID, Data: data})
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, doc docstore.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	res := s.db.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND id = ?", collection, id).
		Updates(map[string]any{
			"data":       datatypes.JSON(body),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return s.fail("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return docstore.NotFound(collection, id)
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&Document{})
	if res.Error != nil {
		return s.fail("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return docstore.NotFound(collection, id)
	}
	return nil
}

func (s *Store) Close() error {
	if !s.ownsDB {
		return nil
	}
	return db.Close(s.db)
}

func (s *Store) fail(op string, err error) error {
	s.log.Debug("sql document store error",
		zap.String("operation", op),
		zap.Bool("connection_error", db.IsUnavailableErr(err)),
		zap.Error(err),
	)
	return docstore.Unavailable("sql "+op, err)
}

func decode(raw datatypes.JSON) (docstore.Document, error) {
	var doc docstore.Document
	if len(raw) == 0 {
		return docstore.Document{}, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		doc = docstore.Document{}
	}
	return doc, nil
}

var _ docstore.Gateway = (*Store)(nil)
