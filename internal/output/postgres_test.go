package output

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecer struct {
	calls []execCall
	err   error
}

func (f *fakeExecer) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: arguments})
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func TestPostgresOutput_WriteMessage(t *testing.T) {
	db := &fakeExecer{}
	out := NewPostgresOutput(db)

	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, sampleEvent(t)))
	require.Len(t, db.calls, 1)

	args := db.calls[0].args
	require.Len(t, args, 7)
	assert.Equal(t, "ckevt0001", args[0])
	assert.Equal(t, time.Unix(1709281800, 0).UTC(), args[1])
	require.IsType(t, (*string)(nil), args[2])
	assert.Equal(t, "Night", *args[2].(*string))
	assert.Equal(t, true, args[4])

	var items []models.OrderLine
	require.NoError(t, json.Unmarshal(args[5].([]byte), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "steak, potato(x2), error", args[6])
	assert.NoError(t, out.Close())
}

func TestPostgresOutput_UnresolvedTimeOfDayIsNull(t *testing.T) {
	db := &fakeExecer{}
	out := NewPostgresOutput(db)

	msg, err := json.Marshal(models.OrderParsedEvent{ID: "x", RawInput: "brunch, 1", HasInvalidInput: true, Rendered: "error"})
	require.NoError(t, err)
	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, msg))

	assert.Nil(t, db.calls[0].args[2])
}

func TestPostgresOutput_Errors(t *testing.T) {
	db := &fakeExecer{err: errors.New("connection reset")}
	out := NewPostgresOutput(db)

	assert.ErrorIs(t, out.WriteMessage(models.TopicOrderParsed, sampleEvent(t)), db.err)
	assert.Error(t, out.EnsureSchema(context.Background()))
	assert.Error(t, out.WriteMessage(models.TopicOrderParsed, []byte("{")))
}
