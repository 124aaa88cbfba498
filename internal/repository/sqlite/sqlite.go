// Package sqlite stores hostel data in a single SQLite file through
// database/sql and the go-sqlite3 driver. Timestamps are kept as unix
// nanoseconds in INTEGER columns.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/hostel-cms/complaint-service/internal/repository"
)

// NewStore bundles the SQLite repositories over db. The schema must already
// exist; persistence.NewSQLite creates it.
func NewStore(db *sql.DB) *repository.Store {
	return repository.NewStore(
		NewUserRepository(db),
		NewComplaintRepository(db),
		NewAnnouncementRepository(db),
		db.Close,
	)
}

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// withTx runs fn inside a transaction, rolling back when fn fails.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
