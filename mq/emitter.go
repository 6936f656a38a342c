package mq

import (
	"context"
	"encoding/json"
	"log"

	"expofloor/rdx"
)

const channel = "floorplan-events"

// Index describes a change event for downstream consumers (indexers, audit).
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}

type Emitter struct {
	cache *rdx.Cache
}

func NewEmitter(cache *rdx.Cache) *Emitter {
	return &Emitter{cache: cache}
}

// Emit publishes a change event over redis pub/sub. Best effort: a dead broker
// never fails the request that triggered the event.
func (e *Emitter) Emit(ctx context.Context, eventName string, content Index) {
	if e == nil {
		return
	}

	data, err := json.Marshal(map[string]any{
		"event":       eventName,
		"entity_type": content.EntityType,
		"method":      content.Method,
		"entity_id":   content.EntityId,
	})
	if err != nil {
		log.Printf("mq: marshal failed for %s: %v", eventName, err)
		return
	}

	if err := e.cache.Publish(ctx, channel, data); err != nil {
		log.Printf("mq: publish failed for %s: %v", eventName, err)
	}
}
