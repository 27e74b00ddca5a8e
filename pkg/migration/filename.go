// Package migration implements the filename and timestamp service (§4.7),
// the applied-migration ledger (§3, §6), and the migration-content
// renderer (§4.6).
//
// Grounded on housekeeper's pkg/migrator/migration.go's
// LoadMigrationDir, which derives a migration's sortable identity from a
// `20060102150405` timestamp prefix; here the same timestamp format
// backs the filename service instead of loading migrations for execution.
package migration

import (
	"fmt"
	"regexp"
	"sync"
	"time"
)

const timestampLayout = "20060102150405"

// namePattern is the filename grammar required by §3's invariants.
var namePattern = regexp.MustCompile(`^\d{14}_[A-Za-z0-9_-]+\.sql$`)

// IsValidName reports whether filename matches the required migration
// filename grammar.
func IsValidName(filename string) bool {
	return namePattern.MatchString(filename)
}

// Sanitize replaces every character outside [A-Za-z0-9_-] with an
// underscore, per the GLOSSARY's "sanitized name" definition.
func Sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// Namer issues monotonically increasing migration filenames within a
// single process, advancing the second counter on collision so two
// migrations generated within the same wall-clock second still sort
// strictly in generation order.
type Namer struct {
	mu   sync.Mutex
	last time.Time
}

// NewNamer returns a Namer with no issued timestamps yet.
func NewNamer() *Namer {
	return &Namer{}
}

// Next returns the sanitized `YYYYMMDDHHMMSS_<name>.sql` filename for now
// and name, advancing now by one second past the last issued timestamp if
// a collision would otherwise occur.
func (n *Namer) Next(now time.Time, name string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	now = now.UTC()
	if !n.last.IsZero() && !now.After(n.last) {
		now = n.last.Add(time.Second)
	}
	n.last = now

	return fmt.Sprintf("%s_%s.sql", now.Format(timestampLayout), Sanitize(name))
}

// TimestampPrefix extracts the leading 14-digit timestamp from a valid
// migration filename.
func TimestampPrefix(filename string) (string, bool) {
	if !IsValidName(filename) {
		return "", false
	}
	return filename[:14], true
}
