// Package models holds the records persisted by the guestbook server.
package models

// DefaultColor replaces any submitted color that is not a hex token.
const DefaultColor = "#000000"

// Entry is one guestbook post. Entries are append-only; nothing updates or
// deletes them once written.
//
// Time is Unix seconds assigned by the server at insert time. Domain always
// carries an explicit scheme. Color is always a valid "#rrggbb" token.
type Entry struct {
	Name    string
	Domain  string
	Message string
	Color   string
	Time    int64
	Public  bool
}

// IsHexColor reports whether s is "#" followed by exactly six hex digits,
// in either case.
func IsHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
