// Package marathon keeps per-user running balances for the trading marathon
// mode. A user who joins the marathon has a start deposit recorded once;
// every rendered card afterwards applies its PnL to the tracked balance.
package marathon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is a user's marathon state.
type Entry struct {
	UserID       int64           `gorm:"primaryKey"`
	StartDeposit decimal.Decimal `gorm:"type:text"`
	Balance      decimal.Decimal `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Tracker persists marathon entries in SQLite.
type Tracker struct {
	db *gorm.DB
}

// New opens (creating if needed) the marathon database at path.
func New(path string) (*Tracker, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("path", path).Msg("Marathon database ready")
	return &Tracker{db: db}, nil
}

// Start enrolls a user with the given deposit, resetting any previous run.
func (t *Tracker) Start(userID int64, deposit decimal.Decimal) error {
	entry := Entry{
		UserID:       userID,
		StartDeposit: deposit,
		Balance:      deposit,
	}
	return t.db.Save(&entry).Error
}

// Get returns the user's entry, or nil when the user is not enrolled.
func (t *Tracker) Get(userID int64) (*Entry, error) {
	var entry Entry
	err := t.db.First(&entry, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ApplyPnL adds a trade result to the user's balance and returns the updated
// entry. Users not enrolled are left untouched.
func (t *Tracker) ApplyPnL(userID int64, pnl decimal.Decimal) (*Entry, error) {
	entry, err := t.Get(userID)
	if err != nil || entry == nil {
		return nil, err
	}
	entry.Balance = entry.Balance.Add(pnl)
	if err := t.db.Save(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Stop removes the user's marathon entry.
func (t *Tracker) Stop(userID int64) error {
	return t.db.Delete(&Entry{}, "user_id = ?", userID).Error
}
