package adis

import "fmt"

// Status qualifies a line's role. It is the second character of every line.
type Status byte

// Line statuses.
const (
	StatusHeader          Status = 'H'
	StatusNormal          Status = 'N'
	StatusSynchronisation Status = 'S'
	StatusFaulty          Status = 'F'
	StatusDeletion        Status = 'D'
)

var statusNames = map[Status]string{
	StatusHeader:          "header",
	StatusNormal:          "normal",
	StatusSynchronisation: "synchronisation",
	StatusFaulty:          "faulty",
	StatusDeletion:        "deletion",
}

// ParseStatus maps a status character to a Status.
func ParseStatus(c rune) (Status, error) {
	s := Status(c)
	if c > 0x7f || !s.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, c)
	}
	return s, nil
}

// Valid reports whether s is one of the five defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Name returns the long name, e.g. "normal".
func (s Status) Name() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%q)", byte(s))
}

func (s Status) String() string {
	return string(rune(s))
}
