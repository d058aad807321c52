package igdb

import (
	"fmt"
	"strings"
)

// query builds an IGDB (Apicalypse) request body: a sequence of
// semicolon-terminated clauses like
//
//	search "witcher"; fields name, slug; where id = 1942; limit 20;
//
// Clause order follows insertion order; IGDB does not care.
type query struct {
	clauses []string
}

func newQuery() *query {
	return &query{}
}

// Search adds a full-text search clause. The term is quoted with embedded
// quotes escaped.
func (q *query) Search(term string) *query {
	q.clauses = append(q.clauses, fmt.Sprintf("search %q", term))
	return q
}

// Fields sets the field projection.
func (q *query) Fields(fields ...string) *query {
	q.clauses = append(q.clauses, "fields "+strings.Join(fields, ", "))
	return q
}

// Where adds a filter clause, e.g. Where("id = 1942").
func (q *query) Where(cond string) *query {
	q.clauses = append(q.clauses, "where "+cond)
	return q
}

// Sort adds a sort clause. dir is "asc" or "desc".
func (q *query) Sort(field, dir string) *query {
	q.clauses = append(q.clauses, "sort "+field+" "+dir)
	return q
}

// Limit caps the result set size.
func (q *query) Limit(n int) *query {
	q.clauses = append(q.clauses, fmt.Sprintf("limit %d", n))
	return q
}

// String renders the request body.
func (q *query) String() string {
	return strings.Join(q.clauses, "; ") + ";"
}

// searchFields is the projection used by list-shaped results (search,
// popular, by-platform).
var searchFields = []string{
	"name", "slug", "summary",
	"rating", "aggregated_rating", "total_rating",
	"first_release_date", "cover.image_id",
	"platforms.name", "platforms.abbreviation",
	"genres.name",
}

// detailFields is the full projection used by single-game lookups.
var detailFields = []string{
	"name", "slug", "summary", "storyline",
	"rating", "rating_count",
	"aggregated_rating", "aggregated_rating_count",
	"total_rating", "total_rating_count",
	"first_release_date",
	"cover.image_id",
	"platforms.name", "platforms.abbreviation",
	"genres.name",
	"screenshots.image_id",
	"websites.url", "websites.category",
	"involved_companies.company.name",
	"involved_companies.developer", "involved_companies.publisher",
}
