// internal/query/builder.go

// Package query turns user-supplied segment rules into a store-agnostic
// filter. The same Filter renders to a parameterized SQL fragment for the
// Postgres repositories and evaluates customers in memory for tests and
// fakes.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/minicrm/campaign-backend/internal/model"
)

// columns maps rule fields to customer columns. Fields outside this list
// compile to a no-op condition, which also keeps user input out of SQL
// identifiers.
var columns = map[string]string{
	"name":       "name",
	"email":      "email",
	"phone":      "phone",
	"address":    "address",
	"spend":      "spend",
	"visits":     "visits",
	"lastActive": "last_active",
}

// Cond is one compiled rule. Op "" marks a no-op condition that always
// matches (unknown operator or field, fail-open).
type Cond struct {
	Field  string
	Column string
	Op     string
	Value  any // float64 when the raw value parses fully as numeric, else string
}

type Filter struct {
	Logic string // "OR" or "AND"
	Conds []Cond
}

// Build compiles rules plus a logic mode into a Filter. Pure and
// deterministic. Logic is OR only when the mode is exactly "OR".
func Build(rules []model.Rule, logic string) Filter {
	if logic != "OR" {
		logic = "AND"
	}

	conds := make([]Cond, 0, len(rules))
	for _, rule := range rules {
		conds = append(conds, compile(rule))
	}
	return Filter{Logic: logic, Conds: conds}
}

func compile(rule model.Rule) Cond {
	c := Cond{Field: rule.Field, Value: coerce(rule.Value)}

	switch rule.Operator {
	case ">":
		c.Op = ">"
	case "<":
		c.Op = "<"
	case ">=":
		c.Op = ">="
	case "<=":
		c.Op = "<="
	case "==":
		c.Op = "="
	case "!=":
		c.Op = "<>"
	default:
		// unrecognized operator: silent pass-through, not an error
		return c
	}

	col, ok := columns[rule.Field]
	if !ok {
		c.Op = ""
		return c
	}
	c.Column = col
	return c
}

// coerce mirrors the numeric-first comparison semantics: a value whose
// whole string form parses as a number compares numerically.
func coerce(raw string) any {
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return n
	}
	return raw
}

// SQL renders the filter as a parenthesized WHERE fragment with $n
// placeholders starting at startArg. No-op conditions render TRUE.
func (f Filter) SQL(startArg int) (string, []any) {
	if len(f.Conds) == 0 {
		return "TRUE", nil
	}

	parts := make([]string, 0, len(f.Conds))
	args := make([]any, 0, len(f.Conds))
	pos := startArg
	for _, c := range f.Conds {
		if c.Op == "" {
			parts = append(parts, "TRUE")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", c.Column, c.Op, pos))
		args = append(args, c.Value)
		pos++
	}

	joiner := " AND "
	if f.Logic == "OR" {
		joiner = " OR "
	}
	return "(" + strings.Join(parts, joiner) + ")", args
}

// Matches evaluates the filter against a customer in memory.
func (f Filter) Matches(c model.Customer) bool {
	if len(f.Conds) == 0 {
		return true
	}

	if f.Logic == "OR" {
		for _, cond := range f.Conds {
			if cond.matches(c) {
				return true
			}
		}
		return false
	}

	for _, cond := range f.Conds {
		if !cond.matches(c) {
			return false
		}
	}
	return true
}

func (cond Cond) matches(c model.Customer) bool {
	if cond.Op == "" {
		return true
	}

	fv, ok := fieldValue(c, cond.Field)
	if !ok {
		return true
	}

	if want, numeric := cond.Value.(float64); numeric {
		got, ok := toNumber(fv)
		if !ok {
			// type mismatch: only inequality holds
			return cond.Op == "<>"
		}
		return cmpNumbers(got, cond.Op, want)
	}
	return cmpStrings(fmt.Sprintf("%v", fv), cond.Op, cond.Value.(string))
}

func fieldValue(c model.Customer, field string) (any, bool) {
	switch field {
	case "name":
		return c.Name, true
	case "email":
		return c.Email, true
	case "phone":
		return c.Phone, true
	case "address":
		return c.Address, true
	case "spend":
		return c.Spend, true
	case "visits":
		return c.Visits, true
	case "lastActive":
		if c.LastActive == nil {
			return "", true
		}
		// RFC 3339 orders lexicographically, same as chronologically
		return c.LastActive.UTC().Format(time.RFC3339), true
	}
	return nil, false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func cmpNumbers(got float64, op string, want float64) bool {
	switch op {
	case ">":
		return got > want
	case "<":
		return got < want
	case ">=":
		return got >= want
	case "<=":
		return got <= want
	case "=":
		return got == want
	case "<>":
		return got != want
	}
	return true
}

func cmpStrings(got, op, want string) bool {
	switch op {
	case ">":
		return got > want
	case "<":
		return got < want
	case ">=":
		return got >= want
	case "<=":
		return got <= want
	case "=":
		return got == want
	case "<>":
		return got != want
	}
	return true
}
