package scale

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE - where the published tables come from
// =============================================================================

// Source loads one edition of the salary scale.
// Implementations: FileSource (JSON files), Memory (tests), sqlite.Store.
type Source interface {
	Load(ctx context.Context, edition Edition) (Table, error)
}

// LoadTables loads both editions from src. Any failure is a
// *ConfigurationError; there is no partial result.
func LoadTables(ctx context.Context, src Source) (*Tables, error) {
	current, err := loadEdition(ctx, src, EditionCurrent)
	if err != nil {
		return nil, err
	}
	previous, err := loadEdition(ctx, src, EditionPrevious)
	if err != nil {
		return nil, err
	}
	return &Tables{Current: current, Previous: previous, Info: map[Edition]EditionInfo{}}, nil
}

func loadEdition(ctx context.Context, src Source, e Edition) (Table, error) {
	t, err := src.Load(ctx, e)
	if err != nil {
		if IsConfigurationError(err) {
			return Table{}, err
		}
		return Table{}, &ConfigurationError{Source: fmt.Sprintf("%T", src), Edition: e, Err: err}
	}
	if t.IsEmpty() {
		return Table{}, &ConfigurationError{Source: fmt.Sprintf("%T", src), Edition: e, Err: fmt.Errorf("table is empty")}
	}
	return t, nil
}

// =============================================================================
// FILE SOURCE - JSON files as published
// =============================================================================

// FileSource reads each edition from a JSON file of the form
//
//	{"2": {"Minimum": 3150.00, "A": 3270.00, ...}, "3": {...}}
type FileSource struct {
	CurrentPath  string
	PreviousPath string
}

// Load implements Source.
func (f FileSource) Load(_ context.Context, edition Edition) (Table, error) {
	path := f.CurrentPath
	if edition == EditionPrevious {
		path = f.PreviousPath
	}
	if path == "" {
		return Table{}, &ConfigurationError{Source: "file", Edition: edition, Err: fmt.Errorf("no path configured")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, &ConfigurationError{Source: path, Edition: edition, Err: err}
	}
	t, err := ParseJSON(data)
	if err != nil {
		return Table{}, &ConfigurationError{Source: path, Edition: edition, Err: err}
	}
	return t, nil
}

// ParseJSON decodes a grade -> step label -> amount document.
func ParseJSON(data []byte) (Table, error) {
	var raw map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(data, &raw); err != nil {
		return Table{}, fmt.Errorf("decode scale table: %w", err)
	}
	return FromLabels(raw)
}

// FromLabels converts string-keyed rows into a Table, rejecting unknown
// grades, non-canonical grade keys ("03", "+3"), unknown step labels
// and negative amounts.
func FromLabels(raw map[string]map[string]decimal.Decimal) (Table, error) {
	rows := make(map[Grade]map[Step]decimal.Decimal, len(raw))
	for gradeKey, steps := range raw {
		g, err := ParseGrade(gradeKey)
		if err != nil {
			return Table{}, err
		}
		if g.String() != gradeKey {
			return Table{}, fmt.Errorf("grade key %q: must be written as %q", gradeKey, g.String())
		}
		row := make(map[Step]decimal.Decimal, len(steps))
		for label, amt := range steps {
			s, ok := ParseStep(label)
			if !ok {
				return Table{}, fmt.Errorf("grade %s: unknown step label %q", g, label)
			}
			if amt.IsNegative() {
				return Table{}, fmt.Errorf("grade %s step %s: negative amount %s", g, label, amt)
			}
			row[s] = amt
		}
		rows[g] = row
	}
	return NewTable(rows), nil
}

// ToLabels is the inverse of FromLabels, used for JSON output.
func (t Table) ToLabels() map[string]map[string]decimal.Decimal {
	out := make(map[string]map[string]decimal.Decimal, len(t.rows))
	for g, steps := range t.rows {
		row := make(map[string]decimal.Decimal, len(steps))
		for s, amt := range steps {
			row[s.Label()] = amt
		}
		out[g.String()] = row
	}
	return out
}
