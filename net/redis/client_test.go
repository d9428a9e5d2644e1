package redis

import (
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestClientDefaults(t *testing.T) {
	client := NewClient(Config{Host: "127.0.0.1", Port: 6379})
	assert.Equal(t, client.cfg.PoolSize, 10)
	assert.Equal(t, client.cfg.Timeout, 1000)
	assert.Equal(t, client.cfg.Addr(), "127.0.0.1:6379")
}

func TestClientNotConnected(t *testing.T) {
	client := NewClient(Config{Host: "127.0.0.1", Port: 6379})
	var value string
	err := client.Exec(&value, "GET", "key")
	assert.Equal(t, err, ErrNotConnected)

	_, err = client.ExecMaybeNil(&value, "HGET", "hash", "field")
	assert.Equal(t, err, ErrNotConnected)

	assert.Equal(t, client.Disconnect(), nil)
}
