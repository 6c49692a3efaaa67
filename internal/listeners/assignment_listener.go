package listeners

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"inventory-system/internal/events"
	"inventory-system/pkg/eventbus"
)

// Publisher sends a payload to a pub/sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// AssignmentListener logs every assignment transition and, when a publisher
// is configured, forwards it as JSON to the given channel.
type AssignmentListener struct {
	publisher Publisher
	channel   string
	logger    *zap.Logger
}

// NewAssignmentListener accepts a nil publisher; events are then only logged.
func NewAssignmentListener(publisher Publisher, channel string, logger *zap.Logger) *AssignmentListener {
	return &AssignmentListener{publisher: publisher, channel: channel, logger: logger}
}

func (l *AssignmentListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.MaterialAsignadoEvent, l.handle)
	bus.Subscribe(events.MaterialDesasignadoEvent, l.handle)
	l.logger.Info("AssignmentListener subscribed",
		zap.Strings("events", []string{events.MaterialAsignadoEvent, events.MaterialDesasignadoEvent}),
		zap.Bool("redis", l.publisher != nil),
	)
}

func (l *AssignmentListener) handle(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.AssignmentChanged)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.Name())
	}

	l.logger.Info("Assignment event",
		zap.String("type", e.Type),
		zap.String("eventId", e.ID.String()),
		zap.Uint64("materialId", e.MaterialID),
		zap.Uint64("historialId", e.HistorialID),
		zap.Uint64("usuarioRegistroId", e.UsuarioRegistroID),
	)

	if l.publisher == nil {
		return nil
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Type, err)
	}
	if err := l.publisher.Publish(ctx, l.channel, payload); err != nil {
		return fmt.Errorf("publish %s to %s: %w", e.Type, l.channel, err)
	}
	return nil
}
