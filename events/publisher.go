package events

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/evermake/microgames/game"
)

const (
	queueSize      = 64
	publishTimeout = 2 * time.Second
)

// Redis is the subset of *redis.Client the publisher needs.
type Redis interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Record is the msgpack payload published for every engine event.
type Record struct {
	Kind       string `msgpack:"kind"`
	State      string `msgpack:"state"`
	LeftScore  int    `msgpack:"left_score"`
	RightScore int    `msgpack:"right_score"`
	Outcome    string `msgpack:"outcome"`
	Scorer     string `msgpack:"scorer,omitempty"`
	At         int64  `msgpack:"at"`
}

func NewRecord(ev game.Event, at time.Time) Record {
	return Record{
		Kind:       string(ev.Kind),
		State:      string(ev.State),
		LeftScore:  ev.Scores.Left,
		RightScore: ev.Scores.Right,
		Outcome:    ev.Outcome.String(),
		Scorer:     string(ev.Scorer),
		At:         at.UnixMilli(),
	}
}

// DecodeRecord parses a published payload.
func DecodeRecord(b []byte) (Record, error) {
	var r Record
	err := msgpack.Unmarshal(b, &r)
	return r, err
}

// Publisher queues engine events and publishes them from its own goroutine,
// so a slow Redis never stalls a tick.
type Publisher struct {
	rdb     Redis
	channel string
	queue   chan []byte
}

func NewPublisher(rdb Redis, channel string) *Publisher {
	return &Publisher{
		rdb:     rdb,
		channel: channel,
		queue:   make(chan []byte, queueSize),
	}
}

// Listener is subscribed to the engine. It never blocks.
func (p *Publisher) Listener(ev game.Event) {
	data, err := msgpack.Marshal(NewRecord(ev, time.Now()))
	if err != nil {
		log.Printf("[EVENTS] Error marshaling event: %v", err)
		return
	}

	select {
	case p.queue <- data:
	default:
		log.Printf("[EVENTS] Publish queue full, dropping %s event", ev.Kind)
	}
}

// Run publishes queued events until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	log.Printf("[EVENTS] Publishing to %s", p.channel)

	for {
		select {
		case <-ctx.Done():
			return
		case data := <-p.queue:
			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			n, err := p.rdb.Publish(pubCtx, p.channel, data).Result()
			cancel()
			if err != nil {
				log.Printf("[EVENTS] Publish to %s failed: %v", p.channel, err)
				continue
			}
			if n == 0 {
				log.Printf("[EVENTS] Published to %s with no subscribers", p.channel)
			}
		}
	}
}
