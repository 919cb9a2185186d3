package toypad

import (
	"github.com/padbridge/toypad/internal/logging"
	"github.com/padbridge/toypad/transport/fake"
)

// NewTestEngine builds an Engine backed by a transport/fake.Transport
// instead of real hardware, for use in downstream consumers' own tests. It
// returns the Engine and the fake transport so callers can inject reports
// and assert on writes.
func NewTestEngine() (*Engine, *fake.Transport) {
	tp := fake.New()
	e := New(Options{
		Transport: tp,
		Logger:    logging.NewLogger(&logging.Config{Pretty: true}),
	})
	return e, tp
}
