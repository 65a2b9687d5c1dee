package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	execSQL  []string
	execArgs [][]any
	copied   [][]any
	table    pgx.Identifier
	queryErr error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, arguments)
	return pgconn.NewCommandTag("OK"), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, f.queryErr
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDB) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	f.table = tableName
	for rowSrc.Next() {
		values, err := rowSrc.Values()
		if err != nil {
			return 0, err
		}
		f.copied = append(f.copied, values)
	}
	return int64(len(f.copied)), rowSrc.Err()
}

func TestMenuRow_RoundTrip(t *testing.T) {
	for _, entry := range models.DefaultMenuEntries() {
		row := newMenuRow(entry)
		got, err := row.toEntry()
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	}

	row := newMenuRow(models.MenuEntry{TimeOfDay: models.Night, Slot: models.Side, Name: "potato", Rule: models.Multiple})
	assert.Equal(t, menuRow{TimeOfDay: "Night", Slot: "Side", Name: "potato", Rule: "Multiple"}, row)
}

func TestMenuRow_RejectsUnknownValues(t *testing.T) {
	tests := []menuRow{
		{TimeOfDay: "Noon", Slot: "Entree", Name: "x", Rule: "Single"},
		{TimeOfDay: "Morning", Slot: "Soup", Name: "x", Rule: "Single"},
		{TimeOfDay: "Morning", Slot: "Entree", Name: "x", Rule: "Some"},
	}
	for _, row := range tests {
		_, err := row.toEntry()
		assert.Error(t, err, "%+v", row)
	}
}

func TestMenuRepository_BulkCreate(t *testing.T) {
	db := &fakeDB{}
	repo := NewMenuRepository(db)

	require.NoError(t, repo.BulkCreate(context.Background(), models.DefaultMenuEntries()))

	assert.Equal(t, pgx.Identifier{"menu_dishes"}, db.table)
	require.Len(t, db.copied, len(models.DefaultMenuEntries()))
	assert.Equal(t, []any{"Morning", "Drink", "coffee", "Multiple"}, db.copied[2])
}

func TestMenuRepository_Exec(t *testing.T) {
	db := &fakeDB{}
	repo := NewMenuRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.Create(ctx, models.MenuEntry{TimeOfDay: models.Morning, Slot: models.Entree, Name: "eggs", Rule: models.Single}))
	require.NoError(t, repo.DeleteAll(ctx))

	require.Len(t, db.execSQL, 3)
	assert.True(t, strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS menu_dishes"))
	assert.Equal(t, []any{"Morning", "Entree", "eggs", "Single"}, db.execArgs[1])
	assert.Equal(t, "TRUNCATE TABLE menu_dishes", db.execSQL[2])
}

func TestLoadMenuData_QueryError(t *testing.T) {
	db := &fakeDB{queryErr: errors.New("relation does not exist")}

	_, err := LoadMenuData(context.Background(), NewMenuRepository(db))
	require.Error(t, err)
	assert.ErrorIs(t, err, db.queryErr)
}
