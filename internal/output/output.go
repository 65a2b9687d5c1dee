package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chrisdamba/foodorder/internal/models"
)

// OutputDestination receives encoded order events keyed by topic.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// New builds the destination selected by config.OutputDestination. A nil
// destination with a nil error means events are not published.
func New(ctx context.Context, config *models.Config, console io.Writer) (OutputDestination, error) {
	switch config.OutputDestination {
	case models.OutputNone, "":
		return nil, nil
	case models.OutputConsole:
		return NewConsoleOutput(console), nil
	case models.OutputKafka:
		producer, err := NewSaramaProducer(config)
		if err != nil {
			return nil, err
		}
		return NewKafkaOutput(producer), nil
	case models.OutputParquet:
		p, err := NewParquetOutput(config)
		if err != nil {
			return nil, err
		}
		return p, nil
	case models.OutputPostgres:
		p, err := OpenPostgresOutput(ctx, config.Database)
		if err != nil {
			return nil, err
		}
		return p, nil
	case models.OutputRedis:
		r, err := OpenRedisOutput(ctx, config.Redis)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("unsupported output destination: %s", config.OutputDestination)
}
