package tables

import (
	"fmt"

	"seller-payout-reconciler/pkg/errors"
	"seller-payout-reconciler/pkg/logger"

	"github.com/shopspring/decimal"
)

// Role describes one semantic column role to resolve against a table: an
// ordered candidate name list tried first, then a fixed positional fallback.
type Role struct {
	// Name identifies the role in error messages and lookups,
	// e.g. "order id", "seller price".
	Name string

	// Candidates are tried in order with case-sensitive exact matching.
	Candidates []string

	// FallbackIndex is the zero-based positional fallback used when no
	// candidate matches. -1 means the role has no positional fallback.
	// The source report's column letter is documented where each role is
	// declared.
	FallbackIndex int

	// Required roles fail resolution with a MissingColumnError; optional
	// roles resolve to "absent" and read as empty/zero.
	Required bool
}

// Resolution records which concrete column a role resolved to.
type Resolution struct {
	Index        int    `json:"index"`
	Column       string `json:"column"`
	UsedFallback bool   `json:"used_fallback"`
}

// ColumnMap is the per-table mapping from role name to resolved column,
// immutable once built.
type ColumnMap struct {
	table    string
	resolved map[string]Resolution

	// Notes are the diagnostic messages emitted when a fallback path was
	// used, so a human can verify the format assumption. Informational,
	// not errors.
	Notes []string
}

// Resolve builds the ColumnMap for a table. Resolution order per role:
// first candidate name present in the header set, else the positional
// fallback when the table is wide enough, else a MissingColumnError for
// required roles or "absent" for optional ones.
func Resolve(t *Table, roles []Role) (*ColumnMap, error) {
	log := logger.WithComponent("column_resolver").WithField("table", t.Name)

	cm := &ColumnMap{
		table:    t.Name,
		resolved: make(map[string]Resolution, len(roles)),
	}

	for _, role := range roles {
		matched := false
		for _, candidate := range role.Candidates {
			if idx := t.ColumnIndex(candidate); idx >= 0 {
				cm.resolved[role.Name] = Resolution{Index: idx, Column: candidate}
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if role.FallbackIndex >= 0 && role.FallbackIndex < t.NumColumns() {
			header := t.Headers[role.FallbackIndex]
			cm.resolved[role.Name] = Resolution{
				Index:        role.FallbackIndex,
				Column:       header,
				UsedFallback: true,
			}
			note := fmt.Sprintf("role '%s' resolved by position: using column %d ('%s') of %s table",
				role.Name, role.FallbackIndex+1, header, t.Name)
			cm.Notes = append(cm.Notes, note)
			log.WithFields(logger.Fields{
				"role":   role.Name,
				"index":  role.FallbackIndex,
				"column": header,
			}).Warn("Column resolved by positional fallback; verify the report format")
			continue
		}

		if role.Required {
			return nil, errors.MissingColumnError(t.Name, role.Name, role.Candidates, role.FallbackIndex)
		}

		log.WithField("role", role.Name).Debug("Optional column absent; values default to zero")
	}

	return cm, nil
}

// Has reports whether the role resolved to a concrete column.
func (cm *ColumnMap) Has(role string) bool {
	_, ok := cm.resolved[role]
	return ok
}

// Index returns the resolved column index for the role, or -1 when absent.
func (cm *ColumnMap) Index(role string) int {
	if r, ok := cm.resolved[role]; ok {
		return r.Index
	}
	return -1
}

// Resolution returns the full resolution record for a role.
func (cm *ColumnMap) Resolution(role string) (Resolution, bool) {
	r, ok := cm.resolved[role]
	return r, ok
}

// Value reads the raw cell for a role from a row, "" when the role is
// absent or the row is too short.
func (cm *ColumnMap) Value(row []string, role string) string {
	idx := cm.Index(role)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Money reads a role's cell as a coerced decimal amount (zero when absent
// or unparsable).
func (cm *ColumnMap) Money(row []string, role string) decimal.Decimal {
	return Money(cm.Value(row, role))
}

// Identifier reads a role's cell as a normalized join key.
func (cm *ColumnMap) Identifier(row []string, role string) string {
	return Identifier(cm.Value(row, role))
}
