package volume

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresRepo stores each volume as a JSONB document in the volumes table.
type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

// OpenPostgresRepo creates a pool for dsn and verifies it with a ping.
func OpenPostgresRepo(ctx context.Context, dsn string, timeout time.Duration) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return NewPostgresRepo(pool, timeout), nil
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, f Fields) (Volume, error) {
	const sql = `
		INSERT INTO volumes (doc, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id::text, doc`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	v, err := scanVolume(r.db.QueryRow(timeoutCtx, sql, f))
	if err != nil {
		return Volume{}, storageErr("create", errors.Wrap(err, "insert volume"))
	}
	return v, nil
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]Volume, error) {
	const query = `SELECT id::text, doc FROM volumes ORDER BY created_at, id`
	return r.query(ctx, "find all", query)
}

// Find matches with JSONB containment, so a genre filter matches any volume whose
// genre list contains the value.
func (r *PostgresRepo) Find(ctx context.Context, q Filter) ([]Volume, error) {
	const query = `SELECT id::text, doc FROM volumes WHERE doc @> $1::jsonb ORDER BY created_at, id`

	probe := map[string]any{string(q.Field): q.Value}
	if q.Field == FilterGenre {
		probe[string(q.Field)] = []any{q.Value}
	}
	return r.query(ctx, "find", query, probe)
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Volume, error) {
	const query = `SELECT id::text, doc FROM volumes WHERE id = $1`
	return r.queryOne(ctx, "find", query, id)
}

func (r *PostgresRepo) DeleteByID(ctx context.Context, id string) (Volume, error) {
	const sql = `DELETE FROM volumes WHERE id = $1 RETURNING id::text, doc`
	return r.queryOne(ctx, "delete", sql, id)
}

func (r *PostgresRepo) UpdateByID(ctx context.Context, id string, patch Fields) (Volume, error) {
	const sql = `
		UPDATE volumes
		SET doc = doc || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING id::text, doc`
	return r.queryOne(ctx, "update", sql, id, patch)
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PostgresRepo) Close(context.Context) error {
	r.db.Close()
	return nil
}

func (r *PostgresRepo) query(ctx context.Context, op, query string, args ...any) ([]Volume, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, storageErr(op, errors.Wrap(err, "query volumes"))
	}
	defer rows.Close()

	out := []Volume{}
	for rows.Next() {
		v, err := scanVolume(rows)
		if err != nil {
			return nil, storageErr(op, errors.Wrap(err, "scan volume"))
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return out, nil
}

func (r *PostgresRepo) queryOne(ctx context.Context, op, query, id string, args ...any) (Volume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Volume{}, storageErr(op, errors.Wrapf(err, "malformed id %q", id))
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	v, err := scanVolume(r.db.QueryRow(timeoutCtx, query, append([]any{id}, args...)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Volume{}, ErrNotFound
		}
		return Volume{}, storageErr(op, err)
	}
	return v, nil
}

func scanVolume(row pgx.Row) (Volume, error) {
	var v Volume
	if err := row.Scan(&v.ID, &v.Fields); err != nil {
		return Volume{}, err
	}
	return v, nil
}
