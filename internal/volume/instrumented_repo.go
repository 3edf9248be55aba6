package volume

import (
	"context"
	"errors"
	"time"

	"volumeapi/internal/metrics"
)

// InstrumentedRepo records the outcome and latency of every call to the wrapped Repository.
type InstrumentedRepo struct {
	next Repository
}

func NewInstrumentedRepo(next Repository) *InstrumentedRepo {
	return &InstrumentedRepo{next: next}
}

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.ObserveStore(op, outcome, time.Since(start))
}

func (r *InstrumentedRepo) Create(ctx context.Context, f Fields) (v Volume, err error) {
	defer func(start time.Time) { observe("create", start, err) }(time.Now())
	return r.next.Create(ctx, f)
}

func (r *InstrumentedRepo) FindAll(ctx context.Context) (vs []Volume, err error) {
	defer func(start time.Time) { observe("find_all", start, err) }(time.Now())
	return r.next.FindAll(ctx)
}

func (r *InstrumentedRepo) FindByID(ctx context.Context, id string) (v Volume, err error) {
	defer func(start time.Time) { observe("find_by_id", start, err) }(time.Now())
	return r.next.FindByID(ctx, id)
}

func (r *InstrumentedRepo) DeleteByID(ctx context.Context, id string) (v Volume, err error) {
	defer func(start time.Time) { observe("delete_by_id", start, err) }(time.Now())
	return r.next.DeleteByID(ctx, id)
}

func (r *InstrumentedRepo) UpdateByID(ctx context.Context, id string, patch Fields) (v Volume, err error) {
	defer func(start time.Time) { observe("update_by_id", start, err) }(time.Now())
	return r.next.UpdateByID(ctx, id, patch)
}

func (r *InstrumentedRepo) Find(ctx context.Context, q Filter) (vs []Volume, err error) {
	defer func(start time.Time) { observe("find_by_"+string(q.Field), start, err) }(time.Now())
	return r.next.Find(ctx, q)
}

func (r *InstrumentedRepo) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *InstrumentedRepo) Close(ctx context.Context) error {
	return r.next.Close(ctx)
}
