package elainadb

import (
	"errors"
	"time"

	"github.com/efritz/backoff"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
	"github.com/panjf2000/ants/v2"

	"github.com/lengxi-root/elainadb/iface"
)

type (
	// Client is a goroutine-safe, minimal, and pooled database client.
	Client = iface.Client

	// Statement bundles a query and its arguments together to be used
	// in a transaction.
	Statement = iface.Statement

	// BatchQuery describes one query of a concurrent batch.
	BatchQuery = iface.BatchQuery

	client struct {
		pool            Pool
		workers         *ants.Pool
		backoff         backoff.Backoff
		clock           glock.Clock
		logger          Logger
		acquireBudget   time.Duration
		acquireAttempts int
		batchTimeout    time.Duration
		database        string
	}

	clientConfig struct {
		addr                string
		user                string
		password            string
		database            string
		connectTimeout      time.Duration
		readTimeout         time.Duration
		writeTimeout        time.Duration
		minIdle             int
		maxLifetime         time.Duration
		idleTimeout         time.Duration
		holdCeiling         time.Duration
		longHoldThreshold   time.Duration
		maintenanceInterval time.Duration
		pollInterval        time.Duration
		acquireBudget       time.Duration
		acquireAttempts     int
		dialAttempts        int
		retryBase           time.Duration
		retryMax            time.Duration
		batchWorkers        int
		batchTimeout        time.Duration
		breakerFunc         BreakerFunc
		clock               glock.Clock
		dialer              DialFunc
		logger              Logger
	}

	// ConfigFunc is a function used to initialize a new client.
	ConfigFunc func(*clientConfig)
)

// ErrNoConnection is returned when no usable session could be acquired
// after exhausting the configured acquisition attempts.
var ErrNoConnection = errors.New("no usable connection available in pool")

// NewClient creates a new Client. The addr is the host:port of the
// database server.
func NewClient(addr string, configs ...ConfigFunc) Client {
	config := &clientConfig{
		addr:                addr,
		user:                "root",
		password:            "",
		database:            "",
		connectTimeout:      time.Second * 5,
		readTimeout:         time.Second * 30,
		writeTimeout:        time.Second * 30,
		minIdle:             2,
		maxLifetime:         time.Hour,
		idleTimeout:         time.Minute * 10,
		holdCeiling:         time.Minute * 2,
		longHoldThreshold:   time.Minute,
		maintenanceInterval: time.Minute,
		pollInterval:        time.Millisecond * 100,
		acquireBudget:       time.Second * 5,
		acquireAttempts:     3,
		dialAttempts:        3,
		retryBase:           time.Millisecond * 500,
		retryMax:            time.Second * 5,
		batchWorkers:        5,
		batchTimeout:        time.Second * 10,
		breakerFunc:         noopBreakerFunc,
		clock:               glock.NewRealClock(),
		logger:              &defaultLogger{},
	}

	for _, f := range configs {
		f(config)
	}

	dialer := config.dialer
	if dialer == nil {
		dialer = makeDialer(config)
	}

	poolConfig := &PoolConfig{
		MinIdle:             config.minIdle,
		MaxLifetime:         config.maxLifetime,
		IdleTimeout:         config.idleTimeout,
		HoldCeiling:         config.holdCeiling,
		LongHoldThreshold:   config.longHoldThreshold,
		MaintenanceInterval: config.maintenanceInterval,
		PollInterval:        config.pollInterval,
		DialAttempts:        config.dialAttempts,
		DialBackoffBase:     config.retryBase,
		DialBackoffMax:      config.retryMax,
	}

	batchWorkers := config.batchWorkers
	if batchWorkers < 1 {
		batchWorkers = 1
	}

	workers, _ := ants.NewPool(batchWorkers)

	return &client{
		pool:            NewPool(dialer, poolConfig, config.logger, config.breakerFunc, config.clock),
		workers:         workers,
		backoff:         backoff.NewExponentialBackoff(config.retryBase, config.retryMax),
		clock:           config.clock,
		logger:          config.logger,
		acquireBudget:   config.acquireBudget,
		acquireAttempts: config.acquireAttempts,
		batchTimeout:    config.batchTimeout,
		database:        config.database,
	}
}

// WithCredentials sets the user and password (default is root with an
// empty password).
func WithCredentials(user, password string) ConfigFunc {
	return func(c *clientConfig) { c.user = user; c.password = password }
}

// WithDatabase sets the database name (default is "").
func WithDatabase(database string) ConfigFunc {
	return func(c *clientConfig) { c.database = database }
}

// WithConnectTimeout sets the connect timeout for new sessions
// (default is 5 seconds).
func WithConnectTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.connectTimeout = timeout }
}

// WithReadTimeout sets the read timeout for all sessions in the pool
// (default is 30 seconds).
func WithReadTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.readTimeout = timeout }
}

// WithWriteTimeout sets the write timeout for all sessions in the pool
// (default is 30 seconds).
func WithWriteTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.writeTimeout = timeout }
}

// WithMinIdle sets the number of idle sessions the pool maintains
// (default is 2).
func WithMinIdle(min int) ConfigFunc {
	return func(c *clientConfig) { c.minIdle = min }
}

// WithMaxLifetime sets the maximum age of a session before it is
// discarded instead of reused (default is one hour).
func WithMaxLifetime(lifetime time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.maxLifetime = lifetime }
}

// WithIdleTimeout sets how long a session may sit idle before the
// maintenance loop may evict it (default is 10 minutes).
func WithIdleTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.idleTimeout = timeout }
}

// WithHoldCeiling sets the in-use duration past which a released
// session is presumed tainted by a stuck transaction and discarded
// (default is 2 minutes).
func WithHoldCeiling(ceiling time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.holdCeiling = ceiling }
}

// WithLongHoldThreshold sets the checkout duration past which the
// maintenance loop reports a lease as long-running (default is one
// minute).
func WithLongHoldThreshold(threshold time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.longHoldThreshold = threshold }
}

// WithMaintenanceInterval sets the period of the pool's background
// maintenance loop (default is one minute).
func WithMaintenanceInterval(interval time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.maintenanceInterval = interval }
}

// WithAcquireBudget sets the maximum time a caller blocks while
// acquiring a session (default is 5 seconds).
func WithAcquireBudget(budget time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.acquireBudget = budget }
}

// WithAcquireAttempts sets how many times a unit of work retries
// acquisition before giving up (default is 3).
func WithAcquireAttempts(attempts int) ConfigFunc {
	return func(c *clientConfig) { c.acquireAttempts = attempts }
}

// WithDialAttempts sets how many times the factory retries dialing a
// new session before reporting failure (default is 3).
func WithDialAttempts(attempts int) ConfigFunc {
	return func(c *clientConfig) { c.dialAttempts = attempts }
}

// WithRetryInterval sets the base and cap of the backoff applied
// between dial and acquisition retries (defaults are 500 milliseconds
// and 5 seconds).
func WithRetryInterval(base, max time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.retryBase = base; c.retryMax = max }
}

// WithBatchWorkers sets the size of the worker pool that runs
// concurrent query batches (default is 5). Values below one fall back
// to a single worker.
func WithBatchWorkers(workers int) ConfigFunc {
	return func(c *clientConfig) { c.batchWorkers = workers }
}

// WithBatchTimeout sets the per-query timeout applied when collecting
// the results of a concurrent batch (default is 10 seconds).
func WithBatchTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.batchTimeout = timeout }
}

// WithBreaker sets the circuit breaker instance to use around new
// sessions. The default uses a no-op circuit breaker.
func WithBreaker(breaker overcurrent.CircuitBreaker) ConfigFunc {
	return func(c *clientConfig) { c.breakerFunc = breaker.Call }
}

// WithBreakerRegistry sets the overcurrent registry to use and the
// name of the circuit breaker config to use around new sessions. The
// default uses a no-op circuit breaker.
func WithBreakerRegistry(registry overcurrent.Registry, name string) ConfigFunc {
	return func(c *clientConfig) {
		c.breakerFunc = func(f overcurrent.BreakerFunc) error {
			return registry.Call(name, f, nil)
		}
	}
}

// WithDialer sets the function that creates sessions. The default
// dialer connects to the configured database server.
func WithDialer(dialer DialFunc) ConfigFunc {
	return func(c *clientConfig) { c.dialer = dialer }
}

// WithLogger sets the logger instance (the default will use Go's
// builtin logging library).
func WithLogger(logger Logger) ConfigFunc {
	return func(c *clientConfig) { c.logger = logger }
}

// NewStatement creates a Statement instance.
func NewStatement(query string, args ...interface{}) Statement {
	return Statement{
		Query: query,
		Args:  args,
	}
}

//
// Client Implementation

func (c *client) Close() {
	c.workers.Release()
	c.pool.Close()
}

func (c *client) QueryOne(query string, args ...interface{}) (Row, bool) {
	rows, ok := c.QueryAll(query, args...)
	if !ok || len(rows) == 0 {
		return nil, false
	}

	return rows[0], true
}

func (c *client) QueryAll(query string, args ...interface{}) ([]Row, bool) {
	var rows []Row
	err := c.withConn(func(conn Conn) error {
		result, err := conn.Query(query, args...)
		rows = result
		return err
	})

	if err != nil {
		return nil, false
	}

	return rows, true
}

func (c *client) Exec(query string, args ...interface{}) bool {
	err := c.withConn(func(conn Conn) error {
		_, err := conn.Exec(query, args...)
		return err
	})

	return err == nil
}

func (c *client) Transaction(statements ...Statement) bool {
	err := c.withConn(func(conn Conn) error {
		for _, statement := range statements {
			if _, err := conn.Exec(statement.Query, statement.Args...); err != nil {
				return err
			}
		}

		return nil
	})

	return err == nil
}

func (c *client) TableExists(name string) bool {
	row, ok := c.QueryOne(
		"SELECT COUNT(*) AS n FROM information_schema.tables WHERE table_schema = ? AND table_name = ?",
		c.database,
		name,
	)

	if !ok {
		return false
	}

	switch n := row["n"].(type) {
	case int64:
		return n > 0
	case string:
		return n != "0"
	}

	return false
}
