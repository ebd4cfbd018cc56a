// Package indexcache is an opt-in on-disk cache for directory runs: the
// canonical JSON encoding of each file's SemanticIndex, keyed by
// (file_path, content_hash), so unchanged files skip re-indexing across
// invocations. It sits beside the pure pipeline, never inside it; the core
// stays (CST, language) -> SemanticIndex with no I/O.
package indexcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one cached index blob.
type Entry struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	FilePath    string `gorm:"type:text;index:idx_file_hash,unique"`
	ContentHash string `gorm:"type:varchar(64);index:idx_file_hash,unique"`
	Language    string `gorm:"type:varchar(20);not null"`
	IndexJSON   string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Cache wraps the gorm handle.
type Cache struct {
	db *gorm.DB
}

// Open connects to (creating if needed) the sqlite cache at path and runs
// migrations.
func Open(path string, debug bool) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return newCache(db)
}

// OpenWith connects through an explicit dialector. Tests use this with the
// pure-Go glebarez sqlite driver and an in-memory DSN.
func OpenWith(dialector gorm.Dialector) (*Cache, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return newCache(db)
}

func newCache(db *gorm.DB) (*Cache, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return &Cache{db: db}, nil
}

// HashContent returns the hex SHA-256 of a file's content, the cache key
// component that invalidates entries when the file changes.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached index JSON for (filePath, contentHash), or
// ("", false) on a miss.
func (c *Cache) Get(filePath, contentHash string) (string, bool, error) {
	var entry Entry
	err := c.db.Where("file_path = ? AND content_hash = ?", filePath, contentHash).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.IndexJSON, true, nil
}

// Put stores indexJSON for (filePath, contentHash), replacing any stale
// entry for the same file.
func (c *Cache) Put(filePath, contentHash, language, indexJSON string) error {
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_path = ?", filePath).Delete(&Entry{}).Error; err != nil {
			return err
		}
		return tx.Create(&Entry{
			ID:          uuid.NewString(),
			FilePath:    filePath,
			ContentHash: contentHash,
			Language:    language,
			IndexJSON:   indexJSON,
		}).Error
	})
}

// Close releases the underlying connection.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
