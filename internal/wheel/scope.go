package wheel

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/couchcryptid/weather-wheel/internal/domain"
)

// ErrInvalidMonth is returned for a month index outside 0..11.
var ErrInvalidMonth = errors.New("month must be in 0..11")

// Mode selects whether the summary covers the whole year or a single month.
type Mode int

const (
	ModeYear Mode = iota
	ModeMonth
)

func (m Mode) String() string {
	if m == ModeMonth {
		return "month"
	}
	return "year"
}

// MarshalText encodes the mode as "year" or "month".
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Scope is the active summary scope. Month is kept when switching back to the
// year so a later month selection can be compared against it.
type Scope struct {
	Mode  Mode `json:"mode"`
	Month int  `json:"month"`
}

// Includes reports whether r is summarized under s.
func (s Scope) Includes(r domain.DailyRecord) bool {
	return s.Mode == ModeYear || r.Month == s.Month
}

// Filter returns the records summarized under s, in input order.
func (s Scope) Filter(records []domain.DailyRecord) []domain.DailyRecord {
	if s.Mode == ModeYear {
		return records
	}
	out := make([]domain.DailyRecord, 0, 31)
	for _, r := range records {
		if s.Includes(r) {
			out = append(out, r)
		}
	}
	return out
}

// Label is the year number or the month name.
func (s Scope) Label(year int, months []string) string {
	if s.Mode == ModeMonth && s.Month >= 0 && s.Month < len(months) {
		return months[s.Month]
	}
	return strconv.Itoa(year)
}

// ScopeSelector tracks scope transitions. The zero value starts in year mode.
type ScopeSelector struct {
	current Scope
}

// Current returns the active scope.
func (s *ScopeSelector) Current() Scope {
	return s.current
}

// ToggleYear switches to year mode. It reports false when already there.
func (s *ScopeSelector) ToggleYear() bool {
	next, ok := s.peekYear()
	if ok {
		s.current = next
	}
	return ok
}

// SelectMonth switches to month mode for m.
func (s *ScopeSelector) SelectMonth(m int) error {
	next, err := s.peekMonth(m)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

func (s *ScopeSelector) peekYear() (Scope, bool) {
	if s.current.Mode == ModeYear {
		return s.current, false
	}
	return Scope{Mode: ModeYear, Month: s.current.Month}, true
}

func (s *ScopeSelector) peekMonth(m int) (Scope, error) {
	if m < 0 || m > 11 {
		return s.current, fmt.Errorf("select month %d: %w", m, ErrInvalidMonth)
	}
	return Scope{Mode: ModeMonth, Month: m}, nil
}
