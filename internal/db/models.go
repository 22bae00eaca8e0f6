package db

import "time"

// KVEntry maps plugin.kv_entries, the durable store behind provider token caches.
type KVEntry struct {
	Key       string    `gorm:"column:key;type:text;primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (KVEntry) TableName() string { return "plugin.kv_entries" }

func autoMigrateModels() []any {
	return []any{
		&KVEntry{},
	}
}
