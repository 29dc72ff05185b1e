package listquery

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/portfolio-api/pkg/apperror"
)

var testSchema = &Schema{
	Table: "projects",
	Fields: []Field{
		{Name: "id", Type: UUID},
		{Name: "title", Type: Text},
		{Name: "stars", Type: Int},
		{Name: "featured", Type: Bool},
		{Name: "technologies", Type: TextArray},
		{Name: "user_id", Type: UUID},
		{Name: "created_at", Type: Timestamp},
	},
}

func mustParse(t *testing.T, raw string) *Query {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q, err := Parse(testSchema, values)
	require.NoError(t, err)
	return q
}

func requireValidation(t *testing.T, raw string) {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	_, err = Parse(testSchema, values)
	require.Error(t, err)
	require.True(t, apperror.IsKind(err, apperror.KindValidation), err.Error())
}

func TestParseDefaults(t *testing.T) {
	q := mustParse(t, "")
	require.Equal(t, 1, q.Page)
	require.Equal(t, 10, q.Limit)
	require.Equal(t, 0, q.Offset())
	require.Empty(t, q.Filters)
	require.Nil(t, q.Select)
	require.Equal(t, []SortKey{{Field: "created_at", Desc: true}}, q.Sort)
}

func TestParsePagingFallbacks(t *testing.T) {
	q := mustParse(t, "page=abc&limit=-4")
	require.Equal(t, DefaultPage, q.Page)
	require.Equal(t, DefaultLimit, q.Limit)

	q = mustParse(t, "page=3&limit=1000")
	require.Equal(t, 3, q.Page)
	require.Equal(t, MaxLimit, q.Limit)
	require.Equal(t, 200, q.Offset())
}

func TestParseFilters(t *testing.T) {
	q := mustParse(t, "title=api&stars[gte]=3&stars[lt]=10&technologies[in]=Go,%20Rust&featured=true")
	require.Len(t, q.Filters, 5)

	// keys are processed in sorted order
	require.Equal(t, "featured", q.Filters[0].Field.Name)
	require.Equal(t, true, q.Filters[0].Value)

	require.Equal(t, OpGte, q.Filters[1].Op)
	require.Equal(t, int64(3), q.Filters[1].Value)
	require.Equal(t, OpLt, q.Filters[2].Op)

	require.Equal(t, OpIn, q.Filters[3].Op)
	require.Equal(t, []any{"Go", "Rust"}, q.Filters[3].Value)

	require.Equal(t, OpEq, q.Filters[4].Op)
	require.Equal(t, "api", q.Filters[4].Value)
}

func TestParseTimeAndUUIDFilters(t *testing.T) {
	q := mustParse(t, "created_at[gte]=2024-01-02&user_id=6F9619FF-8B86-D011-B42D-00CF4FC964FF")
	require.Len(t, q.Filters, 2)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), q.Filters[0].Value)
	require.Equal(t, "6f9619ff-8b86-d011-b42d-00cf4fc964ff", q.Filters[1].Value)
}

func TestParseRejectsUnknownInput(t *testing.T) {
	requireValidation(t, "password_hash=x")
	requireValidation(t, "title[regex]=.*")
	requireValidation(t, "title[gt=1")
	requireValidation(t, "stars=many")
	requireValidation(t, "user_id=not-a-uuid")
	requireValidation(t, "created_at[lt]=yesterday")
	requireValidation(t, "featured[gt]=true")
	requireValidation(t, "technologies[lte]=Go")
	requireValidation(t, "select=title,secret")
	requireValidation(t, "sort=-secret")
}

func TestParseSelectAndSort(t *testing.T) {
	q := mustParse(t, "select=title,stars&sort=stars,-title,")
	require.Equal(t, []string{"id", "title", "stars"}, q.Select)
	require.Equal(t, []SortKey{{Field: "stars"}, {Field: "title", Desc: true}}, q.Sort)

	q = mustParse(t, "select=id,title")
	require.Equal(t, []string{"id", "title"}, q.Select)
}

func TestPaginate(t *testing.T) {
	q := mustParse(t, "page=2&limit=1")
	p := q.Paginate(3)
	require.NotNil(t, p.Prev)
	require.Equal(t, Cursor{Page: 1, Limit: 1}, *p.Prev)
	require.NotNil(t, p.Next)
	require.Equal(t, Cursor{Page: 3, Limit: 1}, *p.Next)

	q = mustParse(t, "page=3&limit=1")
	p = q.Paginate(3)
	require.Nil(t, p.Next)
	require.NotNil(t, p.Prev)

	q = mustParse(t, "")
	p = q.Paginate(3)
	require.Nil(t, p.Next)
	require.Nil(t, p.Prev)
}

func TestParseRejectsPageBeyondRange(t *testing.T) {
	requireValidation(t, "page=9223372036854775807&limit=100")
	requireValidation(t, "page=21474837")

	q := mustParse(t, "page=21474836&limit=100")
	require.Equal(t, MaxPage, q.Page)
	require.Positive(t, q.Offset())
	p := q.Paginate(5)
	require.Nil(t, p.Next)
	require.NotNil(t, p.Prev)
	require.Equal(t, MaxPage-1, p.Prev.Page)
}
