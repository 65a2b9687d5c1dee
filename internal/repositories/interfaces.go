package repositories

import (
	"context"

	"github.com/chrisdamba/foodorder/internal/models"
)

type MenuRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkCreate(ctx context.Context, entries []models.MenuEntry) error
	Create(ctx context.Context, entry models.MenuEntry) error
	GetAll(ctx context.Context) ([]models.MenuEntry, error)
	GetByTimeOfDay(ctx context.Context, timeOfDay models.TimeOfDay) ([]models.MenuEntry, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
