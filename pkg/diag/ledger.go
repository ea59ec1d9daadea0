package diag

import "io"

// Ledger is the program-wide record of diagnostics: one bundle per file,
// replayed in the order the files were requested.
type Ledger struct {
	bundles []*Bundle
}

func (l *Ledger) Add(b *Bundle) { l.bundles = append(l.bundles, b) }

func (l *Ledger) Bundles() []*Bundle { return l.bundles }

// HasErrors reports whether any file failed.
func (l *Ledger) HasErrors() bool {
	for _, b := range l.bundles {
		if b.HasErrors() {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with severity s.
func (l *Ledger) Count(s Severity) int {
	n := 0
	for _, b := range l.bundles {
		for _, d := range b.Diagnostics {
			if d.Severity == s {
				n++
			}
		}
	}
	return n
}

// Report writes every bundle in file order.
func (l *Ledger) Report(w io.Writer) error {
	for _, b := range l.bundles {
		if err := b.Write(w); err != nil {
			return err
		}
	}
	return nil
}
