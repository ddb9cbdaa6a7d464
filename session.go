package elainadb

import "github.com/bradhe/stopwatch"

// withConn runs f with exclusive use of one pooled session. The lease
// is released exactly once on every exit path, and the scope's
// transaction is terminated before release: committed when f succeeds,
// rolled back when it fails. Sessions run with autocommit off, so even
// a plain read opens an implicit transaction that must not follow the
// session back into the idle set.
func (c *client) withConn(f func(conn Conn) error) error {
	l, err := c.acquire()
	if err != nil {
		return err
	}

	defer c.pool.Release(l)

	if err := f(l.Conn()); err != nil {
		if _, rerr := l.Conn().Exec("ROLLBACK"); rerr != nil {
			c.logger.Printf("Could not roll back session (%s)", rerr.Error())
		}

		return err
	}

	_, err = l.Conn().Exec("COMMIT")
	return err
}

// acquire layers its own retry on top of the factory's dial retry. The
// pool can be momentarily exhausted even when sessions are creatable,
// so this is a distinct failure mode with a distinct backoff.
func (c *client) acquire() (Lease, error) {
	b := c.backoff.Clone()

	for attempt := 1; ; attempt++ {
		l, err := c.timedAcquire()
		if err == nil {
			if l != nil && c.probe(l.Conn()) {
				return l, nil
			}

			// The failed probe makes Release discard the session.
			c.pool.Release(l)
			err = ErrNoConnection
		}

		if attempt >= c.acquireAttempts {
			return nil, err
		}

		<-c.clock.After(b.NextInterval())
	}
}

// probe confirms a freshly acquired session is actually usable before
// it is handed to the caller.
func (c *client) probe(conn Conn) bool {
	_, err := conn.Query("SELECT 1")
	return err == nil
}

// Acquires and logs the time it took to return from blocking on the
// pool's acquisition path.
func (c *client) timedAcquire() (Lease, error) {
	start := stopwatch.Start()
	l, err := c.pool.Acquire(c.acquireBudget)
	elapsed := start.Stop().Milliseconds()

	if err == nil {
		c.logger.Printf("Received connection after %vms", elapsed)
	} else {
		c.logger.Printf("Could not acquire connection after %vms", elapsed)
	}

	return l, err
}
