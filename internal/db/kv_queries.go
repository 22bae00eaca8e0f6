package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"horse.fit/fanyi/internal/globaltime"
)

// KVStore persists string values in plugin.kv_entries.
type KVStore struct {
	pool *Pool
}

func NewKVStore(pool *Pool) *KVStore {
	return &KVStore{pool: pool}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.pool == nil || s.pool.gdb == nil {
		return "", false, fmt.Errorf("database pool is not initialized")
	}

	var entry KVEntry
	err := s.pool.gdb.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		Take(&entry).Error
	if err != nil {
		if IsNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select kv entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.pool == nil || s.pool.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return fmt.Errorf("kv key is required")
	}

	now := globaltime.UTC()
	entry := KVEntry{
		Key:       trimmedKey,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.pool.gdb.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert kv entry %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Close() error {
	if s == nil {
		return nil
	}
	return s.pool.Close()
}
