package schema

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

var keyCleaner = regexp.MustCompile(`[\s\-]+`)

// NormalizeKey lowercases a raw field name and collapses spaces and
// hyphens into underscores, the form all synonym tables are stored in.
func NormalizeKey(key string) string {
	k := strings.TrimSpace(strings.ToLower(key))
	k = keyCleaner.ReplaceAllString(k, "_")
	return k
}

// overrideFile is the on-disk shape of a synonym override document:
//
//	income_statement:
//	  revenue: [facturacion, ingresos_totales]
type overrideFile struct {
	Income   map[string][]string `yaml:"income_statement"`
	Balance  map[string][]string `yaml:"balance_sheet"`
	CashFlow map[string][]string `yaml:"cash_flow"`
	Equity   map[string][]string `yaml:"equity"`
}

// LoadOverrides reads a YAML synonym override file and returns a schema
// with the extra synonyms appended after the built-in ones, preserving
// built-in priority.
func LoadOverrides(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonym overrides: %w", err)
	}

	var of overrideFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return nil, fmt.Errorf("failed to parse synonym overrides: %w", err)
	}

	s := Default()
	applyOverrides(s.Income, of.Income)
	applyOverrides(s.Balance, of.Balance)
	applyOverrides(s.CashFlow, of.CashFlow)
	applyOverrides(s.Equity, of.Equity)
	return s, nil
}

func applyOverrides(fields []Field, extra map[string][]string) {
	if len(extra) == 0 {
		return
	}
	for i := range fields {
		add, ok := extra[fields[i].Canonical]
		if !ok {
			continue
		}
		for _, syn := range add {
			fields[i].Synonyms = append(fields[i].Synonyms, NormalizeKey(syn))
		}
	}
}
