package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-service/internal/catalog"
)

func TestActorFrom(t *testing.T) {
	assert.Equal(t, "system", ActorFrom(context.Background()).ID)

	ctx := WithActor(context.Background(), Actor{ID: "admin-1", Email: "admin@example.com", ClientIP: "10.0.0.1"})
	actor := ActorFrom(ctx)
	assert.Equal(t, "admin-1", actor.ID)
	assert.Equal(t, "admin@example.com", actor.Email)
	assert.Equal(t, "10.0.0.1", actor.ClientIP)
}

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, func() {
		p.HandleChange(context.Background(), catalog.Change{Kind: catalog.ChangeReplaced})
		p.Close()
	})
}
