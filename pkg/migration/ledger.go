// Ledger implements the applied-migration ledger (§3, §6): an append-only
// record of which migrations this developer has marked applied locally.
//
// Grounded on housekeeper's pkg/migrator/sumfile.go's chained SHA256
// hashing (each entry's hash incorporates the previous entry's hash,
// making any reordering or tampering detectable). The primary ledger file
// (.sqlsync-local-applied.txt) stays exactly what §6 specifies — one
// filename per line, nothing else, since downstream tooling parses it
// directly — so the chain is persisted in a companion `.sum` file instead
// of being interleaved into the ledger's own lines (SUPPLEMENTED FEATURE:
// the source tool has no tamper evidence over its applied-migration
// state; sumfile.go's chaining idea extends naturally to one).
package migration

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrTampered is returned by Ledger.Verify when the companion chain file
// does not match the recomputed chain over the ledger's filenames.
var ErrTampered = errors.New("applied-migration ledger chain does not match recorded entries")

// Ledger is the in-memory view of the applied-migration ledger: an ordered
// list of migration filenames, in the order they were marked applied.
type Ledger struct {
	applied []string
	seen    map[string]bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]bool)}
}

// LoadLedger parses a ledger from r: one migration filename per line,
// blank lines ignored.
func LoadLedger(r io.Reader) (*Ledger, error) {
	l := NewLedger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l.append(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan applied-migration ledger")
	}
	return l, nil
}

// LoadLedgerFile loads the ledger at path. A missing file is an empty
// ledger.
func LoadLedgerFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewLedger(), nil
		}
		return nil, errors.Wrapf(err, "failed to open applied-migration ledger %s", path)
	}
	defer func() { _ = f.Close() }()
	return LoadLedger(f)
}

// Applied returns the applied migration filenames in the order they were
// recorded.
func (l *Ledger) Applied() []string {
	out := make([]string, len(l.applied))
	copy(out, l.applied)
	return out
}

// IsApplied reports whether name has been marked applied.
func (l *Ledger) IsApplied(name string) bool {
	return l.seen[name]
}

// Append records name as newly applied, if not already present. Re-marking
// an already-applied migration is a no-op, keeping the ledger idempotent
// across repeated `mark-applied` invocations.
func (l *Ledger) Append(name string) {
	if l.seen[name] {
		return
	}
	l.append(name)
}

func (l *Ledger) append(name string) {
	l.applied = append(l.applied, name)
	l.seen[name] = true
}

// Save writes the ledger to w, one filename per line, in append order.
func (l *Ledger) Save(w io.Writer) error {
	for _, name := range l.applied {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return errors.Wrap(err, "failed to write applied-migration ledger")
		}
	}
	return nil
}

// SaveFile writes the ledger to path.
func (l *Ledger) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create applied-migration ledger %s", path)
	}
	defer func() { _ = f.Close() }()
	return l.Save(f)
}

// Chain computes the chained SHA256 hash over the ledger's entries in
// order: entry i's hash is SHA256(entry[i-1].hash + entry[i].name), with
// entry 0's hash being SHA256(entry[0].name). Returns the empty string for
// an empty ledger.
func (l *Ledger) Chain() string {
	if len(l.applied) == 0 {
		return ""
	}
	var prev []byte
	for _, name := range l.applied {
		h := sha256.New()
		if prev != nil {
			h.Write(prev)
		}
		h.Write([]byte(name))
		prev = h.Sum(nil)
	}
	return hex.EncodeToString(prev)
}

// SaveChainFile writes the ledger's chain hash to the companion `.sum`
// file at path.
func (l *Ledger) SaveChainFile(path string) error {
	return os.WriteFile(path, []byte(l.Chain()+"\n"), 0o644)
}

// Verify recomputes the chain over the ledger's entries and compares it
// against the chain recorded in the companion `.sum` file at path. A
// missing chain file is treated as unverifiable and returns nil (a ledger
// with no prior chain snapshot has nothing to detect tampering against).
func (l *Ledger) Verify(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to read ledger chain file %s", path)
	}
	recorded := strings.TrimSpace(string(data))
	if recorded != l.Chain() {
		return ErrTampered
	}
	return nil
}
