// Package redisstore implements the document store gateway on Redis. Each
// document is a snappy-compressed JSON value; a sorted set per collection
// indexes the ids by insert time.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/fbrinvoice/internal/docstore"
	"go.uber.org/zap"
)

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type Store struct {
	client redis.UniversalClient
	prefix string
	log    *zap.Logger
}

// NewClient builds a client without dialing; the first command connects.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func New(client redis.UniversalClient, prefix string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "fbrinvoice"
	}
	return &Store{client: client, prefix: prefix, log: log}
}

func (s *Store) indexKey(collection string) string {
	return s.prefix + ":" + collection
}

func (s *Store) docKey(collection, id string) string {
	return s.prefix + ":" + collection + ":" + id
}

func (s *Store) Insert(ctx context.Context, collection string, doc docstore.Document) (string, error) {
	payload, err := encode(doc)
	if err != nil {
		return "", err
	}
	id := ulid.Make().String()

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(collection, id), payload, 0)
		pipe.ZAdd(ctx, s.indexKey(collection), redis.Z{
			Score:  float64(time.Now().UnixMilli()),
			Member: id,
		})
		return nil
	})
	if err != nil {
		return "", docstore.Unavailable("redis insert", err)
	}
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	raw, err := s.client.Get(ctx, s.docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, docstore.NotFound(collection, id)
	}
	if err != nil {
		return nil, docstore.Unavailable("redis get", err)
	}
	doc, err := decode(raw)
	if err != nil {
		return nil, docstore.Unavailable("redis get", err)
	}
	return doc, nil
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]docstore.Snapshot, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(collection), 0, -1).Result()
	if err != nil {
		return nil, docstore.Unavailable("redis list", err)
	}
	out := make([]docstore.Snapshot, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(collection, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, docstore.Unavailable("redis list", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// index entry outlived its document
			continue
		}
		doc, err := decode([]byte(raw))
		if err != nil {
			s.log.Warn("skipping undecodable document", zap.String("collection", collection), zap.String("id", ids[i]), zap.Error(err))
			continue
		}
		out = append(out, docstore.Snapshot{ID: ids[i], Data: doc})
	}
	return out, nil
}

// Update overwrites the value only when the key already exists (SET XX).
func (s *Store) Update(ctx context.Context, collection, id string, doc docstore.Document) error {
	payload, err := encode(doc)
	if err != nil {
		return err
	}
	err = s.client.SetArgs(ctx, s.docKey(collection, id), payload, redis.SetArgs{Mode: "XX"}).Err()
	if errors.Is(err, redis.Nil) {
		return docstore.NotFound(collection, id)
	}
	if err != nil {
		return docstore.Unavailable("redis update", err)
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, collection, id string) error {
	var deleted *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, s.docKey(collection, id))
		pipe.ZRem(ctx, s.indexKey(collection), id)
		return nil
	})
	if err != nil {
		return docstore.Unavailable("redis delete", err)
	}
	if deleted.Val() == 0 {
		return docstore.NotFound(collection, id)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func encode(doc docstore.Document) ([]byte, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return snappy.Encode(nil, body), nil
}

func decode(raw []byte) (docstore.Document, error) {
	body, err := snappy.Decode(nil, raw)
	if err != nil {
		return nil, fmt.Errorf("decompress document: %w", err)
	}
	var doc docstore.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		doc = docstore.Document{}
	}
	return doc, nil
}

var _ docstore.Gateway = (*Store)(nil)
