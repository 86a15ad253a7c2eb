// Package ledger records which orders have been added to the inventory so
// an order is never counted twice.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"eip/internal/logging"
	"eip/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// DefaultFile is the ledger database name inside the data directory.
const DefaultFile = "orders.db"

// ErrOrderAlreadyAdded is returned when recording an order name twice.
var ErrOrderAlreadyAdded = errors.New("order already added to inventory")

// Entry is one order added to the inventory.
type Entry struct {
	ID       uuid.UUID       `json:"id" yaml:"id"`
	Order    string          `json:"order" yaml:"order"`
	Items    int             `json:"items" yaml:"items"`
	Subtotal decimal.Decimal `json:"subtotal" yaml:"subtotal"`
	AddedAt  time.Time       `json:"added_at" yaml:"added_at"`
}

// Ledger is the SQLite backed order history.
type Ledger struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// Open opens or creates the ledger at dbPath and migrates it.
func Open(dbPath string, logger logging.Logger) (*Ledger, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	return &Ledger{
		db:     db,
		logger: logger.WithField(logging.FieldComponent, "ledger"),
		now:    time.Now,
	}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// HasOrder reports whether an order with name was recorded.
func (l *Ledger) HasOrder(ctx context.Context, name string) (bool, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE name = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query order %s: %w", name, err)
	}
	return n > 0, nil
}

// Record stores an order as added. It fails with ErrOrderAlreadyAdded when
// the name is already present.
func (l *Ledger) Record(ctx context.Context, name string, items int, subtotal decimal.Decimal) (Entry, error) {
	return l.RecordWith(ctx, name, items, subtotal, nil)
}

// RecordWith stores an order inside a transaction and runs apply before
// committing. When apply fails the entry is rolled back and its error is
// returned, so the order can be added again.
func (l *Ledger) RecordWith(ctx context.Context, name string, items int, subtotal decimal.Decimal, apply func() error) (Entry, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE name = ?`, name).Scan(&n); err != nil {
		return Entry{}, fmt.Errorf("query order %s: %w", name, err)
	}
	if n > 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrOrderAlreadyAdded, name)
	}

	entry := Entry{
		ID:       uuid.New(),
		Order:    name,
		Items:    items,
		Subtotal: subtotal,
		AddedAt:  l.now().UTC(),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, name, item_count, subtotal, added_at) VALUES (?, ?, ?, ?, ?)`,
		entry.ID.String(), entry.Order, entry.Items, entry.Subtotal.String(), entry.AddedAt.Format(time.RFC3339Nano))
	if err != nil {
		return Entry{}, fmt.Errorf("insert order %s: %w", name, err)
	}

	if apply != nil {
		if err := apply(); err != nil {
			l.logger.WithError(err).Warn("Order not recorded, rolling back",
				logging.F(logging.FieldOrder, name))
			return Entry{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit order %s: %w", name, err)
	}

	l.logger.Info("Order recorded",
		logging.F(logging.FieldOrder, name),
		logging.F(logging.FieldCount, items),
		logging.F(logging.FieldSubtotal, models.FormatPrice(subtotal)))
	return entry, nil
}

// List returns every recorded order, oldest first.
func (l *Ledger) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, item_count, subtotal, added_at FROM orders ORDER BY added_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var id, subtotal, addedAt string
		var e Entry
		if err := rows.Scan(&id, &e.Order, &e.Items, &subtotal, &addedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("order %s: bad id: %w", e.Order, err)
		}
		if e.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			return nil, fmt.Errorf("order %s: bad subtotal: %w", e.Order, err)
		}
		if e.AddedAt, err = time.Parse(time.RFC3339Nano, addedAt); err != nil {
			return nil, fmt.Errorf("order %s: bad timestamp: %w", e.Order, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
