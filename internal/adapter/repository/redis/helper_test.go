package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestStore returns a BalanceStore on key backed by a fresh miniredis.
// The client is closed when the test ends.
func newTestStore(t *testing.T, key string) (*BalanceStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewBalanceStore(client, key), mr
}
