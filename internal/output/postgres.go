package output

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chrisdamba/foodorder/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createParsedOrdersTable = `
CREATE TABLE IF NOT EXISTS parsed_orders (
    id                TEXT PRIMARY KEY,
    parsed_at         TIMESTAMPTZ NOT NULL,
    time_of_day       TEXT,
    raw_input         TEXT NOT NULL,
    has_invalid_input BOOLEAN NOT NULL,
    items             JSONB NOT NULL,
    rendered          TEXT NOT NULL
)`

const insertParsedOrder = `
INSERT INTO parsed_orders (
    id, parsed_at, time_of_day, raw_input, has_invalid_input, items, rendered
) VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING`

// Execer is the subset of pgxpool.Pool used for writes.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOutput stores order events in the parsed_orders table.
type PostgresOutput struct {
	db      Execer
	timeout time.Duration
	release func()
}

func NewPostgresOutput(db Execer) *PostgresOutput {
	return &PostgresOutput{db: db, timeout: 5 * time.Second}
}

// OpenPostgresOutput connects to the configured database and prepares the
// parsed_orders table. The pool is closed with the output.
func OpenPostgresOutput(ctx context.Context, config models.DatabaseConfig) (*PostgresOutput, error) {
	pool, err := pgxpool.New(ctx, config.ConnString())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	p := NewPostgresOutput(pool)
	p.release = pool.Close
	if err := p.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgresOutput) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createParsedOrdersTable); err != nil {
		return fmt.Errorf("failed to create parsed_orders table: %w", err)
	}
	return nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	var event models.OrderParsedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", topic, err)
	}

	items, err := json.Marshal(event.Items)
	if err != nil {
		return err
	}

	var timeOfDay *string
	if event.TimeOfDay != "" {
		timeOfDay = &event.TimeOfDay
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	_, err = p.db.Exec(ctx, insertParsedOrder,
		event.ID,
		time.Unix(event.Timestamp, 0).UTC(),
		timeOfDay,
		event.RawInput,
		event.HasInvalidInput,
		items,
		event.Rendered,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into parsed_orders: %w", err)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	if p.release != nil {
		p.release()
		p.release = nil
	}
	return nil
}
