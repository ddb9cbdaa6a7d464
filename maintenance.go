package elainadb

import "time"

// maintain runs the pool's background upkeep on a fixed interval until
// the pool is closed. Each cycle evicts stale idle sessions and refills
// the pool to its minimum size; every other cycle it also audits
// long-held leases.
func (p *pool) maintain() {
	cycles := 0

	for {
		select {
		case <-p.done:
			return
		case <-p.clock.After(p.config.MaintenanceInterval):
		}

		p.evict()
		p.replenish()

		if cycles++; cycles%2 == 0 {
			p.audit()
		}
	}
}

// evict drops idle sessions whose age exceeds the maximum lifetime, and
// sessions idle past the idle timeout while more than the minimum remain
// idle. Busy sessions do not count toward the floor; idleness alone
// never shrinks the idle set below the configured minimum.
func (p *pool) evict() {
	now := p.clock.Now()

	p.mutex.Lock()
	var victims, kept []*record
	remaining := len(p.idle)

	for _, rec := range p.idle {
		if now.Sub(rec.createdAt) > p.config.MaxLifetime {
			victims = append(victims, rec)
			remaining--
			continue
		}

		if now.Sub(rec.lastUsedAt) > p.config.IdleTimeout && remaining > p.config.MinIdle {
			victims = append(victims, rec)
			remaining--
			continue
		}

		kept = append(kept, rec)
	}

	p.idle = kept
	p.mutex.Unlock()

	for _, rec := range victims {
		p.discard(rec)
	}

	if len(victims) > 0 {
		p.logger.Printf("Evicted %d idle connections", len(victims))
	}
}

// replenish refills the idle set to the configured minimum. A creation
// failure stops the cycle early rather than looping tightly against a
// database that is already down; the next cycle tries again.
func (p *pool) replenish() {
	for {
		p.mutex.Lock()
		deficit := p.config.MinIdle - len(p.idle)
		closed := p.closed
		p.mutex.Unlock()

		if closed || deficit <= 0 {
			return
		}

		conn := p.factory.create()
		if conn == nil {
			return
		}

		now := p.clock.Now()
		rec := &record{conn: conn, createdAt: now, lastUsedAt: now}

		p.mutex.Lock()
		if p.closed {
			p.mutex.Unlock()
			p.discard(rec)
			return
		}

		p.idle = append(p.idle, rec)
		p.mutex.Unlock()
	}
}

// audit surfaces leases held past the long-hold threshold. The session
// is not reclaimed; its owner may be in a legitimately slow transaction.
func (p *pool) audit() {
	now := p.clock.Now()

	p.mutex.Lock()
	var holds []time.Duration
	for _, l := range p.busy {
		if held := now.Sub(l.acquiredAt); held > p.config.LongHoldThreshold {
			holds = append(holds, held)
		}
	}
	p.mutex.Unlock()

	for _, held := range holds {
		p.logger.Printf("Connection has been checked out for %s", held)
	}
}
