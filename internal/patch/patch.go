// AngelaMos | 2026
// patch.go

// Package patch builds parameterized UPDATE statements from sparse
// change-sets. The set of writable columns is fixed when a Template is
// declared; request data only ever supplies values, never column names.
package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raj-p26/inklink-backend/internal/core"
)

var (
	ErrNoFieldsToUpdate = fmt.Errorf("no fields to update: %w", core.ErrInvalidInput)
	ErrUnknownColumn    = fmt.Errorf("unknown column: %w", core.ErrInvalidInput)
	ErrMissingID        = fmt.Errorf("missing id: %w", core.ErrInvalidInput)
)

// Transform rewrites a value before it is bound, e.g. hashing a password.
type Transform func(value string) (string, error)

type Column struct {
	Name      string
	Transform Transform
}

// Template is the declared shape of a partial update against one table.
type Template struct {
	table   string
	key     string
	columns []Column
	index   map[string]int
}

// NewTemplate declares a template. Column order is the binding order of
// every statement the template builds.
func NewTemplate(table, key string, columns ...Column) (*Template, error) {
	if !isIdentifier(table) {
		return nil, fmt.Errorf("patch: invalid table name %q", table)
	}
	if !isIdentifier(key) {
		return nil, fmt.Errorf("patch: invalid key column %q", key)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("patch: template %s has no columns", table)
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if !isIdentifier(c.Name) {
			return nil, fmt.Errorf("patch: invalid column name %q", c.Name)
		}
		if c.Name == key {
			return nil, fmt.Errorf("patch: key column %q is not writable", key)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("patch: duplicate column %q", c.Name)
		}
		index[c.Name] = i
	}

	return &Template{
		table:   table,
		key:     key,
		columns: columns,
		index:   index,
	}, nil
}

func MustTemplate(table, key string, columns ...Column) *Template {
	t, err := NewTemplate(table, key, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the declared column names in binding order.
func (t *Template) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Changes is a sparse change-set: a column absent from the map is left
// unchanged.
type Changes map[string]string

func (c Changes) Set(column, value string) Changes {
	c[column] = value
	return c
}

// SetIf records value only when it is present.
func (c Changes) SetIf(column string, value *string) Changes {
	if value != nil {
		c[column] = *value
	}
	return c
}

func (c Changes) Has(column string) bool {
	_, ok := c[column]
	return ok
}

// Statement is an UPDATE and its positional arguments. Args[i] binds to
// placeholder $(i+1); the row key is always the last argument.
type Statement struct {
	SQL  string
	Args []any
}

// Build renders the UPDATE for the present columns of changes, in
// declaration order, keyed by id.
func (t *Template) Build(id string, changes Changes) (Statement, error) {
	if id == "" {
		return Statement{}, ErrMissingID
	}

	for name := range changes {
		if _, ok := t.index[name]; !ok {
			return Statement{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}

	if len(changes) == 0 {
		return Statement{}, ErrNoFieldsToUpdate
	}

	assignments := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)

	for _, col := range t.columns {
		value, ok := changes[col.Name]
		if !ok {
			continue
		}

		if col.Transform != nil {
			transformed, err := col.Transform(value)
			if err != nil {
				return Statement{}, fmt.Errorf("transform %s: %w", col.Name, err)
			}
			value = transformed
		}

		args = append(args, value)
		assignments = append(
			assignments,
			col.Name+" = $"+strconv.Itoa(len(args)),
		)
	}

	args = append(args, id)

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(t.table)
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(assignments, ", "))
	sb.WriteString(" WHERE ")
	sb.WriteString(t.key)
	sb.WriteString(" = $")
	sb.WriteString(strconv.Itoa(len(args)))

	return Statement{SQL: sb.String(), Args: args}, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
