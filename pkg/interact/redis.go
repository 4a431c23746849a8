package interact

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/progresstwin/pkg/matrix"
)

// DefaultChannel is the Redis channel click events are published on.
const DefaultChannel = "progresstwin:clicks"

// publishTimeout bounds a single publish.
const publishTimeout = 2 * time.Second

// Event is the JSON message published for a click.
type Event struct {
	ID          string      `json:"id"`
	StructureID string      `json:"structure_id,omitempty"`
	RowID       string      `json:"row_id"`
	ColumnID    string      `json:"column_id"`
	Cell        matrix.Cell `json:"cell"`
	At          time.Time   `json:"at"`
}

// Publisher is the subset of a Redis client used by [RedisPublisher].
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisPublisher forwards clicks to a Redis pub/sub channel so the data
// layer owning the matrix can open the clicked cell.
type RedisPublisher struct {
	client      Publisher
	channel     string
	structureID string
	logger      *log.Logger
	now         func() time.Time
}

// NewRedisPublisher returns a publisher on channel (DefaultChannel when
// empty). Publish failures are logged, never returned: clicks are
// fire-and-forget.
func NewRedisPublisher(client Publisher, channel string, logger *log.Logger) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RedisPublisher{client: client, channel: channel, logger: logger, now: time.Now}
}

// ForStructure returns a copy that stamps events with structureID.
func (p *RedisPublisher) ForStructure(structureID string) *RedisPublisher {
	cp := *p
	cp.structureID = structureID
	return &cp
}

// Handler returns p as a click handler.
func (p *RedisPublisher) Handler() Handler {
	return p.Publish
}

// Publish sends one click event.
func (p *RedisPublisher) Publish(rowID, columnID string, cell matrix.Cell) {
	ev := Event{
		ID:          uuid.NewString(),
		StructureID: p.structureID,
		RowID:       rowID,
		ColumnID:    columnID,
		Cell:        cell,
		At:          p.now().UTC(),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("encode click event", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Warn("publish click event", "channel", p.channel, "err", err)
		return
	}
	p.logger.Debug("published click event", "id", ev.ID, "channel", p.channel)
}
