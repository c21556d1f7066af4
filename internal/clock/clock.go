// Package clock supplies the current local time to the rest of the
// application. Every persisted timestamp and every reminder comparison goes
// through a Clock so the zone is consistent and tests can pin the time.
package clock

import (
	"sync"
	"time"
)

// Layout is the textual timestamp format used on the wire and in
// notification payloads. It sorts lexicographically in time order.
const Layout = "2006-01-02 15:04:05"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Local is the production clock. Times are converted to Loc and truncated
// to whole seconds so stored values compare the same way as their textual
// form.
type Local struct {
	Loc *time.Location
}

// NewLocal returns a Local clock for the named zone. An empty name or
// "Local" selects the server's zone.
func NewLocal(zone string) (Local, error) {
	if zone == "" || zone == "Local" {
		return Local{Loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Local{}, err
	}
	return Local{Loc: loc}, nil
}

// Now returns the current time in the clock's zone, second precision.
func (c Local) Now() time.Time {
	loc := c.Loc
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc).Truncate(time.Second)
}

// Manual is a settable clock for tests and replays. It is safe for
// concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock set to t.
func NewManual(t time.Time) *Manual { return &Manual{now: t} }

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Format renders t with Layout.
func Format(t time.Time) string { return t.Format(Layout) }

// FormatPtr renders t with Layout, or "" when t is nil.
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

// Parse reads a Layout timestamp in loc. RFC3339 input is accepted as a
// fallback and converted to loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2.In(loc), nil
	}
	return time.Time{}, err
}
