package volume

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemoryRepo keeps volumes in process memory, in insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Volume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Volume)}
}

func (r *MemoryRepo) Create(_ context.Context, f Fields) (Volume, error) {
	v := Volume{ID: uuid.NewString(), Fields: cloneFields(f)}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[v.ID] = v
	r.order = append(r.order, v.ID)
	return cloneVolume(v), nil
}

func (r *MemoryRepo) FindAll(ctx context.Context) ([]Volume, error) {
	return r.find(func(Volume) bool { return true }), nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (Volume, error) {
	if err := checkUUID("find", id); err != nil {
		return Volume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[id]
	if !ok {
		return Volume{}, ErrNotFound
	}
	return cloneVolume(v), nil
}

func (r *MemoryRepo) DeleteByID(_ context.Context, id string) (Volume, error) {
	if err := checkUUID("delete", id); err != nil {
		return Volume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return Volume{}, ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return v, nil
}

func (r *MemoryRepo) UpdateByID(_ context.Context, id string, patch Fields) (Volume, error) {
	if err := checkUUID("update", id); err != nil {
		return Volume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return Volume{}, ErrNotFound
	}
	v.Apply(cloneFields(patch))
	r.byID[id] = v
	return cloneVolume(v), nil
}

func (r *MemoryRepo) Find(_ context.Context, q Filter) ([]Volume, error) {
	return r.find(q.Matches), nil
}

func (r *MemoryRepo) Ping(context.Context) error { return nil }

func (r *MemoryRepo) Close(context.Context) error { return nil }

func (r *MemoryRepo) find(match func(Volume) bool) []Volume {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Volume{}
	for _, id := range r.order {
		if v := r.byID[id]; match(v) {
			out = append(out, cloneVolume(v))
		}
	}
	return out
}

func checkUUID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storageErr(op, errors.Wrapf(err, "malformed id %q", id))
	}
	return nil
}

// cloneFields deep-copies f so callers never share memory with the store.
func cloneFields(f Fields) Fields {
	out := Fields{
		Title:         clonePtr(f.Title),
		Author:        clonePtr(f.Author),
		PublishedYear: clonePtr(f.PublishedYear),
		Language:      clonePtr(f.Language),
		Country:       clonePtr(f.Country),
		Rating:        clonePtr(f.Rating),
		Summary:       clonePtr(f.Summary),
		CoverImageURL: clonePtr(f.CoverImageURL),
	}
	if f.Genre != nil {
		g := append([]string{}, (*f.Genre)...)
		out.Genre = &g
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneVolume(v Volume) Volume {
	v.Fields = cloneFields(v.Fields)
	return v
}
