// Package importer turns external files into ledger entries.
package importer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cleared-dev/tally/internal/ledger"
)

// Parser converts a file into append requests.
type Parser interface {
	Parse(r io.Reader) ([]ledger.AppendParams, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TallyParser{})
	r.Register(&ChaseParser{})
	return r
}

// Load parses r and appends every row to l. It stops at the first row that
// fails; rows before it stay booked. The returned count is the number of
// entries appended.
func Load(l *ledger.Ledger, p Parser, r io.Reader) (int, error) {
	rows, err := p.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("parsing %s file: %w", p.Format(), err)
	}
	for i, row := range rows {
		if _, err := l.Append(row); err != nil {
			// +2: 1-based, after the header.
			return i, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return len(rows), nil
}

// TallyParser reads the native tally CSV format.
type TallyParser struct{}

// Format returns the parser name.
func (p *TallyParser) Format() string { return "tally" }

// Parse reads a tally CSV.
func (p *TallyParser) Parse(r io.Reader) ([]ledger.AppendParams, error) {
	return ledger.ReadParams(r)
}
