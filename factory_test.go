package elainadb

import (
	"errors"
	"time"

	"github.com/aphistic/sweet"
	"github.com/efritz/backoff"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
	. "github.com/onsi/gomega"
)

type FactorySuite struct{}

func (s *FactorySuite) TestCreateRetriesUntilSuccess(t sweet.T) {
	var (
		dials = 0
		conn  = NewMockConn()
		dial  = func() (Conn, error) {
			if dials++; dials < 3 {
				return nil, errors.New("connection refused")
			}

			return conn, nil
		}
	)

	f := makeFactory(dial, noopBreakerFunc, 3)
	Expect(f.create()).To(BeIdenticalTo(conn))
	Expect(dials).To(Equal(3))
}

func (s *FactorySuite) TestCreateReturnsNilWhenExhausted(t sweet.T) {
	var (
		dials = 0
		dial  = func() (Conn, error) {
			dials++
			return nil, errors.New("connection refused")
		}
	)

	f := makeFactory(dial, noopBreakerFunc, 3)
	Expect(f.create()).To(BeNil())
	Expect(dials).To(Equal(3))
}

func (s *FactorySuite) TestCreateShortCircuitsOnOpenBreaker(t sweet.T) {
	var (
		dials       = 0
		dial        = func() (Conn, error) { dials++; return NewMockConn(), nil }
		breakerFunc = func(f overcurrent.BreakerFunc) error {
			return overcurrent.ErrCircuitOpen
		}
	)

	f := makeFactory(dial, breakerFunc, 3)
	Expect(f.create()).To(BeNil())
	Expect(dials).To(Equal(0))
}

func makeFactory(dialer DialFunc, breakerFunc BreakerFunc, attempts int) *factory {
	return &factory{
		dialer:      dialer,
		breakerFunc: breakerFunc,
		attempts:    attempts,
		backoff:     backoff.NewExponentialBackoff(time.Millisecond, time.Millisecond*5),
		clock:       glock.NewRealClock(),
		logger:      testLogger,
	}
}
