package motivation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dailyLockKey is the well-known advisory lock identifier guarding the
// once-per-day motivation insert. The lock is transaction scoped, so commit
// or rollback releases it; handlers may run in separate processes, which is
// why this is a database lock and not an in-process mutex.
const dailyLockKey int64 = 720510901

type Entry struct {
	ID         int64     `json:"id"`
	Motivation string    `json:"motivation"`
	CreatedAt  time.Time `json:"created_at"`
}

// DailyTx is the critical section for daily generation: the existence check
// and the insert happen under the same advisory lock.
type DailyTx interface {
	Today(ctx context.Context) (*Entry, error)
	Insert(ctx context.Context, text string) (Entry, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// AcquireDaily opens a transaction and takes the advisory lock before
// anything else. Callers holding the returned DailyTx are the only ones able
// to run the check-then-insert sequence until they commit or roll back.
func (s *Store) AcquireDaily(ctx context.Context) (DailyTx, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", dailyLockKey); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	return &dailyTx{tx: tx}, nil
}

type dailyTx struct {
	tx pgx.Tx
}

func (d *dailyTx) Today(ctx context.Context) (*Entry, error) {
	var entry Entry
	err := d.tx.QueryRow(ctx, `
    SELECT id, motivation, created_at
    FROM motivation
    WHERE DATE(created_at) = CURRENT_DATE
    ORDER BY created_at DESC
    LIMIT 1
  `).Scan(&entry.ID, &entry.Motivation, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (d *dailyTx) Insert(ctx context.Context, text string) (Entry, error) {
	var entry Entry
	err := d.tx.QueryRow(ctx, `
    INSERT INTO motivation (motivation)
    VALUES ($1)
    RETURNING id, motivation, created_at
  `, text).Scan(&entry.ID, &entry.Motivation, &entry.CreatedAt)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (d *dailyTx) Commit(ctx context.Context) error   { return d.tx.Commit(ctx) }
func (d *dailyTx) Rollback(ctx context.Context) error { return d.tx.Rollback(ctx) }
