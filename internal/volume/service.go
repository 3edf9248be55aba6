package volume

import (
	"context"
)

// Service provides volume operations on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new volume service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add stores a new volume and returns it with its assigned id.
func (s *Service) Add(ctx context.Context, f Fields) (Volume, error) {
	return s.repo.Create(ctx, f.withDefaults())
}

// List returns every stored volume.
func (s *Service) List(ctx context.Context) ([]Volume, error) {
	return s.repo.FindAll(ctx)
}

// Get returns the volume with the given id.
func (s *Service) Get(ctx context.Context, id string) (Volume, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByTitle returns the first volume whose title equals title exactly.
func (s *Service) GetByTitle(ctx context.Context, title string) (Volume, error) {
	found, err := s.repo.Find(ctx, ByTitle(title))
	if err != nil {
		return Volume{}, err
	}
	if len(found) == 0 {
		return Volume{}, ErrNotFound
	}
	return found[0], nil
}

// Update replaces the supplied attributes of the volume with the given id.
func (s *Service) Update(ctx context.Context, id string, patch Fields) (Volume, error) {
	return s.repo.UpdateByID(ctx, id, patch)
}

// Delete removes the volume with the given id and returns what was removed.
func (s *Service) Delete(ctx context.Context, id string) (Volume, error) {
	return s.repo.DeleteByID(ctx, id)
}

// Filter returns every volume matching q. An empty result is not an error.
func (s *Service) Filter(ctx context.Context, q Filter) ([]Volume, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, q)
}

// Ping checks the store connection.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
