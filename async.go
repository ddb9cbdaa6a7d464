package elainadb

import (
	"errors"
	"time"
)

// asyncQueueSize bounds the number of acquisition requests that may be
// waiting on the background worker at once.
const asyncQueueSize = 64

// ErrQueueFull is returned when the asynchronous acquisition queue is
// at capacity.
var ErrQueueFull = errors.New("async acquisition queue is full")

// acquireRequest is one queued asynchronous acquisition: a result slot
// and the wait budget to apply once the worker picks it up.
type acquireRequest struct {
	budget time.Duration
	result chan AcquireResult
}

// AcquireAsync enqueues an acquisition request and returns immediately.
// A single background worker serves requests in FIFO order through the
// synchronous acquisition path, so blocking session creation never
// happens on the caller's own goroutine. The returned channel receives
// exactly one result.
func (p *pool) AcquireAsync(budget time.Duration) <-chan AcquireResult {
	result := make(chan AcquireResult, 1)
	req := &acquireRequest{budget: budget, result: result}

	// Enqueueing under the lock orders every accepted request before
	// the closed flag flips, so the worker's shutdown flush cannot miss
	// one.
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		result <- AcquireResult{Err: ErrPoolClosed}
		return result
	}

	select {
	case p.requests <- req:
	default:
		result <- AcquireResult{Err: ErrQueueFull}
	}

	return result
}

func (p *pool) processRequests() {
	for {
		select {
		case req := <-p.requests:
			l, err := p.Acquire(req.budget)
			req.result <- AcquireResult{Lease: l, Err: err}
		case <-p.done:
			// Nothing can be enqueued once the pool is closed; refuse
			// whatever was still queued.
			for {
				select {
				case req := <-p.requests:
					req.result <- AcquireResult{Err: ErrPoolClosed}
				default:
					return
				}
			}
		}
	}
}
