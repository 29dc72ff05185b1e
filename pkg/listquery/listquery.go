// Package listquery turns list-endpoint query strings into validated
// filter, sort, field-selection and pagination instructions.
//
//	GET /projects?technologies=Go&created_at[gte]=2024-01-01&select=title&sort=-created_at&page=2&limit=5
//
// Every filter, select and sort key must name a field of the target
// Schema; anything else is rejected with a validation error before a
// query is built.
package listquery

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/portfolio-api/pkg/apperror"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Page*Limit within int range for every allowed limit.
	MaxPage = math.MaxInt32 / MaxLimit

	IDField      = "id"
	CreatedField = "created_at"
)

var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
	"q":      true,
}

type FieldType int

const (
	Text FieldType = iota
	Int
	Bool
	UUID
	Date
	Timestamp
	TextArray
)

type Field struct {
	Name string
	Type FieldType
}

// Relation expands a foreign key column into a restricted shape of the
// referenced row, e.g. user_id -> {"id": ..., "email": ...} under "user".
type Relation struct {
	Name   string
	Column string
	Table  string
	Fields []string
}

type Schema struct {
	Table     string
	Fields    []Field
	Relations []Relation
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var knownOps = map[Op]bool{OpGt: true, OpGte: true, OpLt: true, OpLte: true, OpIn: true}

type Filter struct {
	Field Field
	Op    Op
	// Value holds the converted operand; for OpIn it is a []any.
	Value any
}

type SortKey struct {
	Field string
	Desc  bool
}

type Query struct {
	Filters []Filter
	Select  []string
	Sort    []SortKey
	Page    int
	Limit   int
}

// Offset is the number of records skipped before the current page.
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Cursor points at a neighbouring page of a list result.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *Cursor `json:"next,omitempty"`
	Prev *Cursor `json:"prev,omitempty"`
}

// Paginate builds next/prev descriptors for a result with total matches.
func (q *Query) Paginate(total int64) Pagination {
	var p Pagination
	if int64(q.Page*q.Limit) < total {
		p.Next = &Cursor{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Offset() > 0 {
		p.Prev = &Cursor{Page: q.Page - 1, Limit: q.Limit}
	}
	return p
}

// Page is one page of rows plus the count of all rows matching the filters.
type Page struct {
	Items []map[string]any
	Total int64
}

// Parse validates values against s and returns the resulting Query.
func Parse(s *Schema, values url.Values) (*Query, error) {
	q := &Query{
		Page:  positiveInt(values.Get("page"), DefaultPage),
		Limit: positiveInt(values.Get("limit"), DefaultLimit),
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Page > MaxPage {
		return nil, apperror.Validation(fmt.Sprintf("page must not exceed %d", MaxPage))
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		name, op, err := splitKey(key)
		if err != nil {
			return nil, err
		}
		field, ok := s.Field(name)
		if !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown filter field: %s", name))
		}
		for _, raw := range values[key] {
			f, err := buildFilter(field, op, raw)
			if err != nil {
				return nil, err
			}
			q.Filters = append(q.Filters, f)
		}
	}

	if sel := values.Get("select"); sel != "" {
		fields, err := fieldList(s, sel, "select")
		if err != nil {
			return nil, err
		}
		q.Select = withID(fields)
	}

	if srt := values.Get("sort"); srt != "" {
		for _, part := range strings.Split(srt, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key := SortKey{Field: part}
			if strings.HasPrefix(part, "-") {
				key = SortKey{Field: part[1:], Desc: true}
			}
			if _, ok := s.Field(key.Field); !ok {
				return nil, apperror.Validation(fmt.Sprintf("Unknown sort field: %s", key.Field))
			}
			q.Sort = append(q.Sort, key)
		}
	}
	if len(q.Sort) == 0 {
		q.Sort = []SortKey{{Field: CreatedField, Desc: true}}
	}
	return q, nil
}

// splitKey parses "field" or "field[op]".
func splitKey(key string) (string, Op, error) {
	name, rest, found := strings.Cut(key, "[")
	if !found {
		return key, OpEq, nil
	}
	opName, ok := strings.CutSuffix(rest, "]")
	op := Op(opName)
	if !ok || !knownOps[op] {
		return "", "", apperror.Validation(fmt.Sprintf("Unsupported filter operator in %s", key))
	}
	return name, op, nil
}

func buildFilter(field Field, op Op, raw string) (Filter, error) {
	switch field.Type {
	case Bool, TextArray:
		if op != OpEq && op != OpIn {
			return Filter{}, apperror.Validation(fmt.Sprintf("Operator %s is not supported for %s", op, field.Name))
		}
	}
	if op == OpIn {
		parts := strings.Split(raw, ",")
		vals := make([]any, 0, len(parts))
		for _, p := range parts {
			v, err := convert(field, strings.TrimSpace(p))
			if err != nil {
				return Filter{}, err
			}
			vals = append(vals, v)
		}
		return Filter{Field: field, Op: op, Value: vals}, nil
	}
	v, err := convert(field, raw)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Field: field, Op: op, Value: v}, nil
}

func convert(field Field, raw string) (any, error) {
	invalid := apperror.Validation(fmt.Sprintf("Invalid value %q for %s", raw, field.Name))
	switch field.Type {
	case Int:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalid
		}
		return n, nil
	case Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalid
		}
		return b, nil
	case UUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, invalid
		}
		return id.String(), nil
	case Date, Timestamp:
		t, ok := parseTime(raw)
		if !ok {
			return nil, invalid
		}
		return t, nil
	default:
		return raw, nil
	}
}

func parseTime(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fieldList(s *Schema, raw, param string) ([]string, error) {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := s.Field(name); !ok {
			return nil, apperror.Validation(fmt.Sprintf("Unknown %s field: %s", param, name))
		}
		out = append(out, name)
	}
	return out, nil
}

func withID(fields []string) []string {
	for _, f := range fields {
		if f == IDField {
			return fields
		}
	}
	return append([]string{IDField}, fields...)
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
