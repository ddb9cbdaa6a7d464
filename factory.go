package elainadb

import (
	"context"

	"github.com/efritz/backoff"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
)

type (
	factory struct {
		dialer      DialFunc
		breakerFunc BreakerFunc
		attempts    int
		backoff     backoff.Backoff
		clock       glock.Clock
		logger      Logger
	}

	// BreakerFunc bridges the interface between the Call function of
	// an overcurrent breaker and an overcurrent registry.
	BreakerFunc func(overcurrent.BreakerFunc) error
)

func noopBreakerFunc(f overcurrent.BreakerFunc) error {
	return f(context.Background())
}

// create dials a new session with the database, retrying with a growing
// delay between attempts. The dial itself is wrapped in a circuit breaker
// so that if the remote end is down we are not going to hammer it. A nil
// return means no session could be created right now; callers treat that
// as an ordinary outcome rather than an error.
func (f *factory) create() Conn {
	b := f.backoff.Clone()

	for attempt := 0; attempt < f.attempts; attempt++ {
		if attempt > 0 {
			<-f.clock.After(b.NextInterval())
		}

		var conn Conn
		err := f.breakerFunc(func(ctx context.Context) error {
			temp, err := f.dialer()
			conn = temp
			return err
		})

		if err == nil {
			f.logger.Printf("Established a new connection with the database")
			return conn
		}

		f.logger.Printf("Could not connect to the database (%s)", err.Error())
	}

	return nil
}
