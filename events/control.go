package events

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/evermake/microgames/game"
)

// Controller applies lifecycle commands.
type Controller interface {
	Apply(a game.Action) error
}

// HandleControl applies one plain-text command such as "pause" or "reset".
func HandleControl(ctl Controller, payload string) error {
	action, err := game.ParseAction(strings.ToLower(strings.TrimSpace(payload)))
	if err != nil {
		return err
	}
	return ctl.Apply(action)
}

// PubSub is the subscription side of *redis.PubSub.
type PubSub interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

// StartControlSubscriber subscribes to channel and applies every command
// published there until ctx is cancelled.
func StartControlSubscriber(ctx context.Context, rdb *redis.Client, channel string, ctl Controller) {
	if rdb == nil {
		log.Println("[EVENTS] Redis client not set; control subscriber not started")
		return
	}

	go ConsumeControl(ctx, rdb.Subscribe(ctx, channel), channel, ctl)
}

// ConsumeControl applies commands from ps until ctx is cancelled or the
// subscription ends. It closes ps before returning.
func ConsumeControl(ctx context.Context, ps PubSub, channel string, ctl Controller) {
	defer ps.Close()

	ch := ps.Channel()
	log.Printf("[EVENTS] %s subscriber started", channel)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[EVENTS] %s subscriber stopped", channel)
			return
		case msg, ok := <-ch:
			if !ok {
				log.Printf("[EVENTS] %s subscription closed", channel)
				return
			}
			if err := HandleControl(ctl, msg.Payload); err != nil {
				log.Printf("[EVENTS] Invalid control payload %q: %v", msg.Payload, err)
				continue
			}
			log.Printf("[EVENTS] Applied %q from %s", msg.Payload, channel)
		}
	}
}
