package redis

import (
	"errors"
	"fmt"
	"time"

	"github.com/mediocregopher/radix/v3"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned when a command is executed before Connect
var ErrNotConnected = errors.New("redis client not connected")

// Config structure
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int `mapstructure:"db"`
	PoolSize int `mapstructure:"pool_size"`
	// Timeout in milliseconds for dial, read and write operations
	Timeout int
}

// Addr of the redis server
func (cfg Config) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// Client is a small wrapper over a radix connection pool
type Client struct {
	cfg  Config
	pool *radix.Pool
}

// NewClient constructor
func NewClient(cfg Config) *Client {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 1000
	}
	return &Client{cfg: cfg}
}

// Connect opens the connection pool
func (c *Client) Connect() error {
	timeout := time.Duration(c.cfg.Timeout) * time.Millisecond
	connFunc := func(network, addr string) (radix.Conn, error) {
		opts := []radix.DialOpt{
			radix.DialTimeout(timeout),
			radix.DialSelectDB(c.cfg.DB),
		}
		if c.cfg.Password != "" {
			opts = append(opts, radix.DialAuthPass(c.cfg.Password))
		}
		return radix.Dial(network, addr, opts...)
	}

	pool, err := radix.NewPool("tcp", c.cfg.Addr(), c.cfg.PoolSize, radix.PoolConnFunc(connFunc))
	if err != nil {
		return err
	}
	c.pool = pool
	log.Info().Str("section", "redis").Str("addr", c.cfg.Addr()).Msg("Connected to redis")
	return nil
}

// Exec a command against the given key. A nil reply leaves rcv untouched.
func (c *Client) Exec(rcv interface{}, cmd, key string, args ...interface{}) error {
	if c.pool == nil {
		return ErrNotConnected
	}
	return c.pool.Do(radix.FlatCmd(rcv, cmd, key, args...))
}

// ExecMaybeNil behaves like Exec and reports whether the reply was nil
func (c *Client) ExecMaybeNil(rcv interface{}, cmd, key string, args ...interface{}) (bool, error) {
	mn := radix.MaybeNil{Rcv: rcv}
	if err := c.Exec(&mn, cmd, key, args...); err != nil {
		return false, err
	}
	return mn.Nil, nil
}

// Disconnect closes the pool
func (c *Client) Disconnect() error {
	if c.pool == nil {
		return nil
	}
	err := c.pool.Close()
	c.pool = nil
	return err
}
