package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ardnew/dots/lazy"
	"github.com/ardnew/dots/log"
)

// Store is a snapshot database.
type Store struct {
	db     *sql.DB
	sql    dialect
	logger log.Logger
}

// Snapshot is a recorded table.
type Snapshot struct {
	ID      int64
	Label   string
	Created time.Time
	Rows    []lazy.Record // nil when listed with [Store.List]
}

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger used for trace-level records.
func WithLogger(logger log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open connects to the database named by driver and dsn and creates the
// snapshot tables if needed.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*Store, error) {
	d, ok := dialectOf(driver)
	if !ok {
		return nil, ErrDriver.With(slog.String("driver", driver))
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("driver", driver))
	}

	if driver == DriverSQLite {
		// Every sqlite connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, sql: d}
	for _, opt := range opts {
		opt(s)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, ErrOpen.Wrap(err).With(slog.String("driver", driver))
	}

	for _, stmt := range d.schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()

			return nil, ErrOpen.Wrap(err).With(slog.String("driver", driver))
		}
	}

	s.logger.TraceContext(ctx, "store open", slog.String("driver", driver))

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Record saves the rendered rows of t under label and returns the snapshot
// ID.
func (s *Store) Record(ctx context.Context, label string, t *lazy.Table) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ErrQuery.Wrap(err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	created := time.Now().UTC().Format(time.RFC3339Nano)

	id, err = s.insertSnapshot(ctx, tx, label, created)
	if err != nil {
		return 0, ErrQuery.Wrap(err).With(slog.String("label", label))
	}

	stmt, err := tx.PrepareContext(ctx, s.sql.rebind(
		`INSERT INTO snapshot_rows
			(snapshot_id, position, name, envir, expr, value)
			VALUES (?, ?, ?, ?, ?, ?)`,
	))
	if err != nil {
		return 0, ErrQuery.Wrap(err)
	}
	defer stmt.Close()

	for i, r := range t.Records() {
		_, err = stmt.ExecContext(ctx, id, i, r.Name, r.Envir, r.Expr, r.Value)
		if err != nil {
			return 0, ErrQuery.Wrap(err).With(slog.Int("position", i))
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, ErrQuery.Wrap(err)
	}

	s.logger.TraceContext(ctx, "snapshot recorded",
		slog.Int64("id", id),
		slog.String("label", label),
		slog.Int("rows", t.Len()),
	)

	return id, nil
}

func (s *Store) insertSnapshot(
	ctx context.Context,
	tx *sql.Tx,
	label, created string,
) (int64, error) {
	const insert = `INSERT INTO snapshots (label, created) VALUES (?, ?)`

	if s.sql.driver == DriverPostgres {
		var id int64

		err := tx.QueryRowContext(ctx, s.sql.rebind(insert+` RETURNING id`),
			label, created).Scan(&id)

		return id, err
	}

	res, err := tx.ExecContext(ctx, insert, label, created)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// Load returns the snapshot with the given ID, rows included.
func (s *Store) Load(ctx context.Context, id int64) (*Snapshot, error) {
	snap := &Snapshot{ID: id}

	var created string

	err := s.db.QueryRowContext(ctx,
		s.sql.rebind(`SELECT label, created FROM snapshots WHERE id = ?`), id,
	).Scan(&snap.Label, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.With(slog.Int64("id", id))
	}

	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.Int64("id", id))
	}

	snap.Created, _ = time.Parse(time.RFC3339Nano, created)

	rows, err := s.db.QueryContext(ctx, s.sql.rebind(
		`SELECT name, envir, expr, value FROM snapshot_rows
			WHERE snapshot_id = ? ORDER BY position`,
	), id)
	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.Int64("id", id))
	}
	defer rows.Close()

	snap.Rows = []lazy.Record{}

	for rows.Next() {
		var r lazy.Record
		if err := rows.Scan(&r.Name, &r.Envir, &r.Expr, &r.Value); err != nil {
			return nil, ErrQuery.Wrap(err).With(slog.Int64("id", id))
		}

		snap.Rows = append(snap.Rows, r)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.Int64("id", id))
	}

	return snap, nil
}

// List returns every snapshot without rows, newest first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, created FROM snapshots ORDER BY id DESC`)
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	defer rows.Close()

	var snaps []Snapshot

	for rows.Next() {
		var (
			snap    Snapshot
			created string
		)

		if err := rows.Scan(&snap.ID, &snap.Label, &created); err != nil {
			return nil, ErrQuery.Wrap(err)
		}

		snap.Created, _ = time.Parse(time.RFC3339Nano, created)
		snaps = append(snaps, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return snaps, nil
}
