package output

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOutput_WriteMessage(t *testing.T) {
	mr := miniredis.RunT(t)

	out, err := OpenRedisOutput(context.Background(), models.RedisConfig{Address: mr.Addr(), StreamMaxLen: 100})
	require.NoError(t, err)

	msg := sampleEvent(t)
	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, msg))
	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, msg))

	entries, err := mr.Stream(models.TopicOrderParsed)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"event", string(msg)}, entries[0].Values)

	require.NoError(t, out.Close())
	assert.NoError(t, out.Close())
}

func TestOpenRedisOutput_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := OpenRedisOutput(context.Background(), models.RedisConfig{Address: addr})
	assert.Error(t, err)
}
