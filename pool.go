package elainadb

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/efritz/backoff"
	"github.com/efritz/glock"

	"github.com/lengxi-root/elainadb/iface"
)

type (
	// Pool abstracts a self-managed pool of persistent database sessions.
	Pool = iface.Pool

	// Lease represents exclusive, temporary ownership of one pooled session.
	Lease = iface.Lease

	// AcquireResult is the outcome of an asynchronous acquisition request.
	AcquireResult = iface.AcquireResult

	// Stats is a snapshot of the pool's bookkeeping.
	Stats = iface.Stats

	// PoolConfig carries the pool's sizing and lifecycle policy.
	PoolConfig struct {
		MinIdle             int
		MaxLifetime         time.Duration
		IdleTimeout         time.Duration
		HoldCeiling         time.Duration
		LongHoldThreshold   time.Duration
		MaintenanceInterval time.Duration
		PollInterval        time.Duration
		DialAttempts        int
		DialBackoffBase     time.Duration
		DialBackoffMax      time.Duration
	}

	// record tracks one live session. A record is in exactly one place
	// at any instant: the idle slice, the busy map (through its lease),
	// or nowhere once discarded.
	record struct {
		conn       Conn
		createdAt  time.Time
		lastUsedAt time.Time
	}

	lease struct {
		id         uint64
		record     *record
		acquiredAt time.Time
	}

	pool struct {
		factory  *factory
		config   *PoolConfig
		logger   Logger
		clock    glock.Clock
		mutex    sync.Mutex
		idle     []*record
		busy     map[uint64]*lease
		nextID   uint64
		requests chan *acquireRequest
		done     chan struct{}
		closed   bool
	}
)

// ErrPoolClosed is returned when acquiring from a closed pool.
var ErrPoolClosed = errors.New("connection pool is closed")

// TimeoutError is returned when no session could be acquired within the
// caller's wait budget.
type TimeoutError struct {
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no connection acquired within %s", e.Budget)
}

func (l *lease) Conn() Conn {
	return l.record.conn
}

// NewPool creates a pool and fills it to the configured minimum size. A
// database that is unreachable at construction time does not fail the
// pool; it simply starts under-provisioned and the maintenance loop
// catches up once connectivity returns.
func NewPool(
	dialer DialFunc,
	config *PoolConfig,
	logger Logger,
	breakerFunc BreakerFunc,
	clock glock.Clock,
) Pool {
	p := &pool{
		factory: &factory{
			dialer:      dialer,
			breakerFunc: breakerFunc,
			attempts:    config.DialAttempts,
			backoff:     backoff.NewExponentialBackoff(config.DialBackoffBase, config.DialBackoffMax),
			clock:       clock,
			logger:      logger,
		},
		config:   config,
		logger:   logger,
		clock:    clock,
		busy:     map[uint64]*lease{},
		requests: make(chan *acquireRequest, asyncQueueSize),
		done:     make(chan struct{}),
	}

	p.warm()

	go p.maintain()
	go p.processRequests()

	return p
}

func (p *pool) warm() {
	for i := 0; i < p.config.MinIdle; i++ {
		conn := p.factory.create()
		if conn == nil {
			p.logger.Printf("Could not fill pool to its minimum size, starting under-provisioned")
			return
		}

		now := p.clock.Now()
		p.idle = append(p.idle, &record{conn: conn, createdAt: now, lastUsedAt: now})
	}
}

func (p *pool) Close() {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return
	}

	p.closed = true
	idle := p.idle
	busy := p.busy
	p.idle = nil
	p.busy = map[uint64]*lease{}
	p.mutex.Unlock()

	close(p.done)

	for _, rec := range idle {
		p.discard(rec)
	}

	// Sessions still checked out are closed forcibly. Their owners will
	// observe the closed pool on release.
	for _, l := range busy {
		p.discard(l.record)
	}
}

// Acquire attempts to obtain a session in bounded polling rounds: pop and
// validate an idle record, otherwise dial a fresh session, otherwise wait
// one polling slice and try again until the budget elapses.
func (p *pool) Acquire(budget time.Duration) (Lease, error) {
	timeout := p.clock.After(budget)

	for {
		p.mutex.Lock()
		closed := p.closed
		p.mutex.Unlock()

		if closed {
			return nil, ErrPoolClosed
		}

		if l := p.acquireIdle(); l != nil {
			return l, nil
		}

		if conn := p.factory.create(); conn != nil {
			now := p.clock.Now()

			if l := p.register(&record{conn: conn, createdAt: now, lastUsedAt: now}); l != nil {
				return l, nil
			}

			continue
		}

		select {
		case <-timeout:
			return nil, &TimeoutError{Budget: budget}
		case <-p.clock.After(p.config.PollInterval):
		case <-p.done:
			return nil, ErrPoolClosed
		}
	}
}

// acquireIdle pops idle records until one validates. The health probe
// runs outside the lock so a slow network round-trip does not stall
// unrelated pool operations; promotion to busy re-checks pool state
// under the lock.
func (p *pool) acquireIdle() Lease {
	for {
		p.mutex.Lock()
		if len(p.idle) == 0 {
			p.mutex.Unlock()
			return nil
		}

		rec := p.idle[len(p.idle)-1]
		p.idle = p.idle[:len(p.idle)-1]
		p.mutex.Unlock()

		if p.clock.Now().Sub(rec.createdAt) > p.config.MaxLifetime || rec.conn.Ping() != nil {
			p.discard(rec)
			continue
		}

		return p.register(rec)
	}
}

func (p *pool) register(rec *record) Lease {
	p.mutex.Lock()

	if p.closed {
		p.mutex.Unlock()
		p.discard(rec)
		return nil
	}

	p.nextID++
	l := &lease{id: p.nextID, record: rec, acquiredAt: p.clock.Now()}
	p.busy[l.id] = l
	p.mutex.Unlock()

	return l
}

// Release returns a leased session to the idle set, or discards it if it
// aged out, was held past the hold ceiling, or fails its health probe. A
// lease this pool never issued still holds a real session, so it is
// closed defensively rather than ignored.
func (p *pool) Release(l Lease) {
	if l == nil {
		return
	}

	own, ok := l.(*lease)
	if !ok {
		if conn := l.Conn(); conn != nil {
			conn.Close()
		}
		return
	}

	p.mutex.Lock()
	_, tracked := p.busy[own.id]
	delete(p.busy, own.id)
	closed := p.closed
	p.mutex.Unlock()

	rec := own.record
	if !tracked {
		p.discard(rec)
		return
	}

	now := p.clock.Now()

	if held := now.Sub(own.acquiredAt); held > p.config.HoldCeiling {
		p.logger.Printf("Connection was held for %s, discarding it", held)
		p.discard(rec)
		return
	}

	if closed || now.Sub(rec.createdAt) > p.config.MaxLifetime || rec.conn.Ping() != nil {
		p.discard(rec)
		return
	}

	rec.lastUsedAt = now

	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		p.discard(rec)
		return
	}

	p.idle = append(p.idle, rec)
	p.mutex.Unlock()
}

func (p *pool) Stats() Stats {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return Stats{Idle: len(p.idle), Busy: len(p.busy)}
}

func (p *pool) discard(rec *record) {
	if err := rec.conn.Close(); err != nil {
		p.logger.Printf("Could not close connection (%s)", err.Error())
	}
}
