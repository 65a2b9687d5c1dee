package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/chrisdamba/foodorder/internal/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createMenuDishesTable = `
CREATE TABLE IF NOT EXISTS menu_dishes (
    time_of_day TEXT NOT NULL,
    slot        TEXT NOT NULL,
    name        TEXT NOT NULL,
    rule        TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (time_of_day, slot)
)`

const selectMenuDishes = `
SELECT time_of_day, slot, name, rule
FROM menu_dishes`

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

var (
	_ DB                          = (*pgxpool.Pool)(nil)
	_ repositories.MenuRepository = (*MenuRepository)(nil)
)

type MenuRepository struct {
	db DB
}

func NewMenuRepository(db DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// menuRow mirrors a menu_dishes row; enums are stored by name.
type menuRow struct {
	TimeOfDay string `db:"time_of_day"`
	Slot      string `db:"slot"`
	Name      string `db:"name"`
	Rule      string `db:"rule"`
}

func newMenuRow(entry models.MenuEntry) menuRow {
	return menuRow{
		TimeOfDay: entry.TimeOfDay.String(),
		Slot:      entry.Slot.String(),
		Name:      entry.Name,
		Rule:      entry.Rule.String(),
	}
}

func (r menuRow) toEntry() (models.MenuEntry, error) {
	tod, ok := models.ParseTimeOfDay(r.TimeOfDay)
	if !ok {
		return models.MenuEntry{}, fmt.Errorf("unknown time of day %q", r.TimeOfDay)
	}
	slot, ok := models.ParseDishSlot(r.Slot)
	if !ok {
		return models.MenuEntry{}, fmt.Errorf("unknown dish slot %q", r.Slot)
	}
	rule, ok := models.ParseOrderRule(r.Rule)
	if !ok {
		return models.MenuEntry{}, fmt.Errorf("unknown order rule %q", r.Rule)
	}
	return models.MenuEntry{TimeOfDay: tod, Slot: slot, Name: r.Name, Rule: rule}, nil
}

func (r *MenuRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createMenuDishesTable); err != nil {
		return fmt.Errorf("failed to create menu_dishes table: %w", err)
	}
	return nil
}

func (r *MenuRepository) BulkCreate(ctx context.Context, entries []models.MenuEntry) error {
	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"menu_dishes"},
		[]string{"time_of_day", "slot", "name", "rule"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			row := newMenuRow(entries[i])
			return []any{row.TimeOfDay, row.Slot, row.Name, row.Rule}, nil
		}),
	)
	return err
}

func (r *MenuRepository) Create(ctx context.Context, entry models.MenuEntry) error {
	query := `
        INSERT INTO menu_dishes (time_of_day, slot, name, rule)
        VALUES ($1, $2, $3, $4)
    `
	row := newMenuRow(entry)
	_, err := r.db.Exec(ctx, query, row.TimeOfDay, row.Slot, row.Name, row.Rule)
	return err
}

func (r *MenuRepository) GetAll(ctx context.Context) ([]models.MenuEntry, error) {
	return r.query(ctx, selectMenuDishes)
}

func (r *MenuRepository) GetByTimeOfDay(ctx context.Context, timeOfDay models.TimeOfDay) ([]models.MenuEntry, error) {
	return r.query(ctx, selectMenuDishes+" WHERE time_of_day = $1", timeOfDay.String())
}

func (r *MenuRepository) query(ctx context.Context, sql string, args ...any) ([]models.MenuEntry, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[menuRow])
	if err != nil {
		return nil, err
	}

	entries := make([]models.MenuEntry, 0, len(records))
	for _, rec := range records {
		entry, err := rec.toEntry()
		if err != nil {
			return nil, fmt.Errorf("invalid menu_dishes row %q: %w", rec.Name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *MenuRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM menu_dishes").Scan(&count)
	return count, err
}

func (r *MenuRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "TRUNCATE TABLE menu_dishes")
	return err
}

// LoadMenuData reads every stored dish and builds the lookup table.
func LoadMenuData(ctx context.Context, repo *MenuRepository) (models.MenuData, error) {
	entries, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return models.BuildMenuData(entries)
}
