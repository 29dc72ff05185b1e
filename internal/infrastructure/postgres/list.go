package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/portfolio-api/pkg/listquery"
)

// listStatement is the rendered SQL for one list request.
type listStatement struct {
	Query     string
	Args      []any
	Count     string
	CountArgs []any
}

var sqlOps = map[listquery.Op]string{
	listquery.OpEq:  "=",
	listquery.OpGt:  ">",
	listquery.OpGte: ">=",
	listquery.OpLt:  "<",
	listquery.OpLte: "<=",
}

func ident(parts ...string) string {
	return pgx.Identifier(parts).Sanitize()
}

// buildList renders q against s. Field names come from the schema, never
// from the request, and every value is bound as a parameter.
func buildList(s *listquery.Schema, q *listquery.Query) listStatement {
	var args []any
	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	names := q.Select
	if len(names) == 0 {
		names = make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			names = append(names, f.Name)
		}
	}
	relations := make(map[string]listquery.Relation, len(s.Relations))
	for _, r := range s.Relations {
		relations[r.Column] = r
	}

	cols := make([]string, 0, len(names))
	var joins []string
	for _, name := range names {
		if rel, ok := relations[name]; ok {
			alias := "r" + strconv.Itoa(len(joins))
			pairs := make([]string, 0, len(rel.Fields))
			for _, f := range rel.Fields {
				pairs = append(pairs, "'"+f+"', "+ident(alias, f))
			}
			cols = append(cols, fmt.Sprintf("json_build_object(%s) AS %s", strings.Join(pairs, ", "), ident(rel.Name)))
			joins = append(joins, fmt.Sprintf("LEFT JOIN %s AS %s ON %s = %s",
				ident(rel.Table), alias, ident(alias, "id"), ident("t", rel.Column)))
			continue
		}
		f, _ := s.Field(name)
		if f.Type == listquery.UUID {
			cols = append(cols, ident("t", f.Name)+"::text AS "+ident(f.Name))
		} else {
			cols = append(cols, ident("t", f.Name))
		}
	}

	var where []string
	for _, f := range q.Filters {
		col := ident("t", f.Field.Name)
		switch {
		case f.Field.Type == listquery.TextArray && f.Op == listquery.OpIn:
			where = append(where, col+" && "+bind(typedSlice(f.Field.Type, f.Value)))
		case f.Field.Type == listquery.TextArray:
			where = append(where, bind(f.Value)+" = ANY("+col+")")
		case f.Op == listquery.OpIn && f.Field.Type == listquery.UUID:
			where = append(where, col+"::text = ANY("+bind(typedSlice(f.Field.Type, f.Value))+")")
		case f.Op == listquery.OpIn:
			where = append(where, col+" = ANY("+bind(typedSlice(f.Field.Type, f.Value))+")")
		default:
			where = append(where, col+" "+sqlOps[f.Op]+" "+bind(f.Value))
		}
	}
	filterArgs := len(args)

	order := make([]string, 0, len(q.Sort)+1)
	hasID := false
	for _, k := range q.Sort {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		if k.Field == listquery.IDField {
			hasID = true
		}
		order = append(order, ident("t", k.Field)+" "+dir)
	}
	if !hasID {
		order = append(order, ident("t", listquery.IDField)+" ASC")
	}

	from := ident(s.Table) + " AS t"
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = " WHERE " + strings.Join(where, " AND ")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(from)
	for _, j := range joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	b.WriteString(whereSQL)
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(order, ", "))
	b.WriteString(" LIMIT " + bind(q.Limit))
	b.WriteString(" OFFSET " + bind(q.Offset()))

	return listStatement{
		Query:     b.String(),
		Args:      args,
		Count:     "SELECT count(*) FROM " + from + whereSQL,
		CountArgs: args[:filterArgs],
	}
}

// typedSlice converts []any operands into a slice pgx can encode as an array.
func typedSlice(t listquery.FieldType, v any) any {
	vals, _ := v.([]any)
	switch t {
	case listquery.Int:
		out := make([]int64, 0, len(vals))
		for _, x := range vals {
			out = append(out, x.(int64))
		}
		return out
	case listquery.Bool:
		out := make([]bool, 0, len(vals))
		for _, x := range vals {
			out = append(out, x.(bool))
		}
		return out
	case listquery.Date, listquery.Timestamp:
		out := make([]time.Time, 0, len(vals))
		for _, x := range vals {
			out = append(out, x.(time.Time))
		}
		return out
	default:
		out := make([]string, 0, len(vals))
		for _, x := range vals {
			out = append(out, fmt.Sprint(x))
		}
		return out
	}
}

// listRows runs a list statement and returns the page with its filtered total.
func listRows(ctx context.Context, db DB, s *listquery.Schema, q *listquery.Query) (*listquery.Page, error) {
	st := buildList(s, q)
	var total int64
	if err := db.QueryRow(ctx, st.Count, st.CountArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", s.Table, err)
	}
	rows, err := db.Query(ctx, st.Query, st.Args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Table, err)
	}
	return &listquery.Page{Items: items, Total: total}, nil
}
