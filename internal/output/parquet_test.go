package output

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/chrisdamba/foodorder/internal/cloudwriter"
	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
)

type memoryCloudWriter struct {
	buf    bytes.Buffer
	closed bool
}

func (m *memoryCloudWriter) Write(data []byte) (int, error) {
	return m.buf.Write(data)
}

func (m *memoryCloudWriter) Close() error {
	m.closed = true
	return nil
}

type memoryCloudFactory struct {
	bucket  string
	path    string
	writers []*memoryCloudWriter
}

func (f *memoryCloudFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	f.bucket = bucket
	f.path = objectPath
	w := &memoryCloudWriter{}
	f.writers = append(f.writers, w)
	return w, nil
}

func TestNewOrderParsedRecord(t *testing.T) {
	record := NewOrderParsedRecord(models.OrderParsedEvent{
		ID:        "ckevt0001",
		TimeOfDay: "Morning",
		Items: []models.OrderLine{
			{Slot: models.Entree, Name: "eggs", Quantity: 1},
			{Slot: models.Drink, Name: "coffee", Quantity: 3},
		},
	})

	assert.Equal(t, "Entree:eggs:1;Drink:coffee:3", record.Items)
	assert.Equal(t, int32(4), record.ItemCount)
	assert.Equal(t, "Morning", record.TimeOfDay)
}

func TestParquetOutput_Local(t *testing.T) {
	dir := t.TempDir()
	out := newParquetOutput(dir, "parsed", nil, "")

	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, sampleEvent(t)))
	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, sampleEvent(t)))
	require.NoError(t, out.Close())

	path := filepath.Join(dir, "parsed", models.TopicOrderParsed, parquetFileName)
	fr, err := local.NewLocalFileReader(path)
	require.NoError(t, err)
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(OrderParsedRecord), 1)
	require.NoError(t, err)
	defer pr.ReadStop()

	require.Equal(t, int64(2), pr.GetNumRows())
	rows := make([]OrderParsedRecord, 2)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "ckevt0001", rows[0].ID)
	assert.Equal(t, "Entree:steak:1;Side:potato:2", rows[0].Items)
	assert.Equal(t, int32(3), rows[0].ItemCount)
	assert.True(t, rows[1].HasInvalidInput)
}

func TestParquetOutput_RejectsMalformedEvent(t *testing.T) {
	out := newParquetOutput(t.TempDir(), "parsed", nil, "")
	assert.Error(t, out.WriteMessage(models.TopicOrderParsed, []byte("not json")))
	assert.NoError(t, out.Close())
}

func TestParquetOutput_Cloud(t *testing.T) {
	factory := &memoryCloudFactory{}
	out := newParquetOutput("", "parsed", factory, "order-archive")

	require.NoError(t, out.WriteMessage(models.TopicOrderParsed, sampleEvent(t)))
	require.NoError(t, out.Close())

	require.Len(t, factory.writers, 1)
	assert.Equal(t, "order-archive", factory.bucket)
	assert.Equal(t, "parsed/order_parsed/data.parquet", factory.path)

	w := factory.writers[0]
	assert.True(t, w.closed)
	data := w.buf.Bytes()
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("PAR1"), data[:4])
	assert.Equal(t, []byte("PAR1"), data[len(data)-4:])
}

func TestCloudParquetFile_Seek(t *testing.T) {
	f := NewCloudParquetFile(&memoryCloudWriter{})

	n, err := f.Write([]byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	pos, err := f.Seek(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos)

	pos, err = f.Seek(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pos)

	_, err = f.Seek(0, 2)
	assert.Error(t, err)

	_, err = f.Read(make([]byte, 1))
	assert.Error(t, err)
}
