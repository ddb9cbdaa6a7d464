package iface

import "time"

// Pool abstracts a self-managed pool of persistent database sessions.
type Pool interface {
	// Close will drain the pool. Every idle session is closed and every
	// session still checked out is closed forcibly. This method blocks.
	Close()

	// Acquire hands exclusive ownership of one session to the caller,
	// creating a session if none is idle. If no session can be obtained
	// before the wait budget elapses, a TimeoutError is returned.
	Acquire(budget time.Duration) (Lease, error)

	// AcquireAsync enqueues an acquisition request to be served by a
	// background worker in FIFO order. The returned channel receives
	// exactly one result.
	AcquireAsync(budget time.Duration) <-chan AcquireResult

	// Release returns ownership of a leased session to the pool. This
	// method must be called exactly once for each successful Acquire.
	// The session is returned to the idle set only if it is still
	// healthy, young enough, and was not held for too long; otherwise
	// it is closed and dropped.
	Release(lease Lease)

	// Stats returns a point-in-time snapshot of the pool.
	Stats() Stats
}

// Lease represents exclusive, temporary ownership of one pooled session.
type Lease interface {
	// Conn returns the session this lease owns.
	Conn() Conn
}

// AcquireResult is the outcome of an asynchronous acquisition request.
type AcquireResult struct {
	Lease Lease
	Err   error
}

// Stats is a snapshot of the pool's bookkeeping.
type Stats struct {
	Idle int
	Busy int
}
