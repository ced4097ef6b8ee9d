package forms

import (
	"context"
	"sync"
	"time"

	"github.com/zamanihq/dashboard/internal/dashboard/debounce"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// Availability is the state of a "is this value free?" check.
type Availability int

const (
	Unknown Availability = iota
	Checking
	Available
	Taken
	CheckFailed
)

func (a Availability) String() string {
	switch a {
	case Checking:
		return "checking"
	case Available:
		return "available"
	case Taken:
		return "taken"
	case CheckFailed:
		return "check failed"
	default:
		return "unknown"
	}
}

type checkFunc func(ctx context.Context, value string) (*zamanisdk.Availability, error)

// availabilityField runs check once the field value has been still for the
// debounce delay. Results for an outdated value are dropped.
type availabilityField struct {
	name  string
	check checkFunc
	deb   *debounce.Debouncer

	mu     sync.Mutex
	value  string
	status Availability
}

func newAvailabilityField(name string, delay time.Duration, check checkFunc) *availabilityField {
	return &availabilityField{name: name, check: check, deb: debounce.New(delay)}
}

// change records a new value and restarts the debounce timer.
func (f *availabilityField) change(ctx context.Context, value string) {
	f.mu.Lock()
	f.value = value
	if value == "" {
		f.status = Unknown
		f.mu.Unlock()
		f.deb.Cancel()
		return
	}
	f.status = Checking
	f.mu.Unlock()

	f.deb.Trigger(func() {
		status := f.run(ctx, value)
		f.settle(value, status)
	})
}

// resolve cancels a pending debounced check and checks value now.
func (f *availabilityField) resolve(ctx context.Context, value string) (Availability, error) {
	f.deb.Cancel()

	avail, err := f.check(ctx, value)
	status := Available
	switch {
	case err != nil:
		status = CheckFailed
	case !avail.Available:
		status = Taken
	}
	f.settle(value, status)
	return status, err
}

func (f *availabilityField) run(ctx context.Context, value string) Availability {
	avail, err := f.check(ctx, value)
	if err != nil {
		slogx.FromContext(ctx).Warn("availability check failed", "field", f.name, "err", err)
		return CheckFailed
	}
	if !avail.Available {
		return Taken
	}
	return Available
}

func (f *availabilityField) settle(value string, status Availability) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.value == value {
		f.status = status
	}
}

func (f *availabilityField) current() Availability {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}
