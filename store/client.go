package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func GetClient(ctx context.Context, host, port string) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s/", host, port)
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

// Probe is the one-shot startup handshake: a failed ping selects the
// in-memory fallback for the rest of the process lifetime.
func Probe(ctx context.Context, client *mongo.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

// newBreaker guards per-operation database round trips so a misbehaving
// backend fails fast instead of hanging requests. Tripping the breaker never
// changes the active mode.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     10 * time.Second,
	})
}
