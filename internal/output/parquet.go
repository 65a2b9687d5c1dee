package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chrisdamba/foodorder/internal/cloudwriter"
	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetFileName = "data.parquet"

// OrderParsedRecord is the flattened parquet row of an OrderParsedEvent.
type OrderParsedRecord struct {
	ID              string `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp       int64  `parquet:"name=timestamp, type=INT64"`
	TimeOfDay       string `parquet:"name=time_of_day, type=BYTE_ARRAY, convertedtype=UTF8"`
	RawInput        string `parquet:"name=raw_input, type=BYTE_ARRAY, convertedtype=UTF8"`
	HasInvalidInput bool   `parquet:"name=has_invalid_input, type=BOOLEAN"`
	Items           string `parquet:"name=items, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemCount       int32  `parquet:"name=item_count, type=INT32"`
	Rendered        string `parquet:"name=rendered, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// NewOrderParsedRecord flattens items as "Slot:name:quantity" joined by ";".
func NewOrderParsedRecord(event models.OrderParsedEvent) OrderParsedRecord {
	items := make([]string, 0, len(event.Items))
	var count int32
	for _, item := range event.Items {
		items = append(items, fmt.Sprintf("%s:%s:%d", item.Slot, item.Name, item.Quantity))
		count += int32(item.Quantity)
	}
	return OrderParsedRecord{
		ID:              event.ID,
		Timestamp:       event.Timestamp,
		TimeOfDay:       event.TimeOfDay,
		RawInput:        event.RawInput,
		HasInvalidInput: event.HasInvalidInput,
		Items:           strings.Join(items, ";"),
		ItemCount:       count,
		Rendered:        event.Rendered,
	}
}

type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	factory, err := cloudwriter.NewFactory(config.CloudStorage.Provider, config.CloudStorage.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
	}
	return newParquetOutput(config.OutputPath, config.OutputFolder, factory, config.CloudStorage.BucketName), nil
}

func newParquetOutput(basePath, folder string, factory cloudwriter.CloudWriterFactory, bucket string) *ParquetOutput {
	return &ParquetOutput{
		basePath:           basePath,
		folder:             folder,
		writers:            make(map[string]*writer.ParquetWriter),
		files:              make(map[string]source.ParquetFile),
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
	}
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	var event models.OrderParsedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", topic, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[topic]
	if !ok {
		var err error
		pw, err = p.createNewWriter(topic)
		if err != nil {
			return err
		}
	}

	if err := pw.Write(NewOrderParsedRecord(event)); err != nil {
		return fmt.Errorf("failed to write parquet record for topic %s: %w", topic, err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(topic string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, parquetFileName)
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		dir := filepath.Join(p.basePath, p.folder, topic)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(dir, parquetFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, new(OrderParsedRecord), 1)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[topic] = pw
	p.files[topic] = fw
	return pw, nil
}

// Close flushes every writer; the last error encountered is returned.
func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = fmt.Errorf("failed to finish parquet file for topic %s: %w", topic, err)
		}
		if f, ok := p.files[topic]; ok {
			if err := f.Close(); err != nil {
				lastErr = fmt.Errorf("failed to close parquet file for topic %s: %w", topic, err)
			}
		}
		delete(p.writers, topic)
		delete(p.files, topic)
	}
	return lastErr
}

// CloudParquetFile adapts a CloudWriter to source.ParquetFile. It only
// supports forward writes.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
