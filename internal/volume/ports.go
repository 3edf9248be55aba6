package volume

import (
	"context"
)

//go:generate mockgen -destination=mock_repository.go -package=volume volumeapi/internal/volume Repository

// Repository defines the contract for volume storage.
type Repository interface {
	Create(ctx context.Context, f Fields) (Volume, error)
	FindAll(ctx context.Context) ([]Volume, error)
	FindByID(ctx context.Context, id string) (Volume, error)
	DeleteByID(ctx context.Context, id string) (Volume, error)
	UpdateByID(ctx context.Context, id string, patch Fields) (Volume, error)
	Find(ctx context.Context, q Filter) ([]Volume, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
