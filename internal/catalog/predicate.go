package catalog

import (
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/money"
	"github.com/lib/pq"
)

// Clause is one independent condition a product row must satisfy. The
// variants form a closed set so each condition can be tested on its own;
// And joins them into a single conjunction.
type Clause interface {
	appendSQL(sb *strings.Builder, args *[]any)
}

// BooleanFlag is a raw boolean column or expression, e.g. "deleted_at IS NULL"
// or "discount > 0". It takes no arguments.
type BooleanFlag struct {
	Expr string
}

func (c BooleanFlag) appendSQL(sb *strings.Builder, _ *[]any) {
	sb.WriteString(c.Expr)
}

// Equals matches a column exactly.
type Equals struct {
	Column string
	Value  any
}

func (c Equals) appendSQL(sb *strings.Builder, args *[]any) {
	*args = append(*args, c.Value)
	fmt.Fprintf(sb, "%s = $%d", c.Column, len(*args))
}

// TextSearch is a case-insensitive substring match, OR-combined across the
// listed columns. LIKE metacharacters in the query are escaped so user input
// is always matched literally.
type TextSearch struct {
	Columns []string
	Query   string
}

func (c TextSearch) appendSQL(sb *strings.Builder, args *[]any) {
	*args = append(*args, "%"+escapeLike(c.Query)+"%")
	n := len(*args)

	sb.WriteByte('(')

	for i, col := range c.Columns {
		if i > 0 {
			sb.WriteString(" OR ")
		}

		fmt.Fprintf(sb, "%s ILIKE $%d ESCAPE '\\'", col, n)
	}

	sb.WriteByte(')')
}

// NumericRange bounds a numeric column from below and/or above. Money bounds
// are passed as exact decimal strings and compared numerically by the store,
// never lexicographically.
type NumericRange struct {
	Column string
	Min    *money.Money
	Max    *money.Money
}

func (c NumericRange) appendSQL(sb *strings.Builder, args *[]any) {
	sb.WriteByte('(')

	if c.Min != nil {
		*args = append(*args, c.Min.String())
		fmt.Fprintf(sb, "%s >= $%d", c.Column, len(*args))
	}

	if c.Max != nil {
		if c.Min != nil {
			sb.WriteString(" AND ")
		}

		*args = append(*args, c.Max.String())
		fmt.Fprintf(sb, "%s <= $%d", c.Column, len(*args))
	}

	sb.WriteByte(')')
}

// TagIntersect matches rows whose tag set shares at least one element with
// the requested tags (OR semantics across the requested list).
type TagIntersect struct {
	Column string
	Tags   []string
}

func (c TagIntersect) appendSQL(sb *strings.Builder, args *[]any) {
	*args = append(*args, pq.Array(c.Tags))
	fmt.Fprintf(sb, "%s && $%d", c.Column, len(*args))
}

// Predicate is a conjunction of clauses.
type Predicate struct {
	clauses []Clause
}

func And(clauses ...Clause) Predicate {
	return Predicate{clauses: clauses}
}

// SQL renders the conjunction as a WHERE condition with positional args
// numbered from $1. An empty predicate renders as TRUE.
func (p Predicate) SQL() (string, []any) {
	if len(p.clauses) == 0 {
		return "TRUE", nil
	}

	var sb strings.Builder

	var args []any

	for i, clause := range p.clauses {
		if i > 0 {
			sb.WriteString(" AND ")
		}

		clause.appendSQL(&sb, &args)
	}

	return sb.String(), args
}

// Compile turns a FilterSpec into the predicate the store query runs. Each
// clause is present only when its field is set; soft-deleted rows are always
// excluded.
func Compile(spec *FilterSpec) Predicate {
	clauses := []Clause{BooleanFlag{Expr: "deleted_at IS NULL"}}

	if spec.Search != "" {
		clauses = append(clauses, TextSearch{
			Columns: []string{"name", "description", "author"},
			Query:   spec.Search,
		})
	}

	if spec.PlatformID != "" {
		clauses = append(clauses, Equals{Column: "platform_id", Value: spec.PlatformID})
	}

	if spec.CategoryID != "" {
		clauses = append(clauses, Equals{Column: "category_id", Value: spec.CategoryID})
	}

	if spec.MinPrice != nil || spec.MaxPrice != nil {
		clauses = append(clauses, NumericRange{Column: "price", Min: spec.MinPrice, Max: spec.MaxPrice})
	}

	if spec.ShowDiscounted {
		clauses = append(clauses, BooleanFlag{Expr: "discount > 0"})
	}

	if len(spec.Tags) > 0 {
		clauses = append(clauses, TagIntersect{Column: "tags", Tags: spec.Tags})
	}

	return And(clauses...)
}

// Scope is the predicate facet queries run under: soft-delete exclusion plus
// the platform selection only. Category picks and search terms deliberately
// do not shrink the facet universe. qualifier prefixes column names when the
// query joins other tables ("p" renders p.platform_id); pass "" otherwise.
func Scope(qualifier, platformID string) Predicate {
	col := func(name string) string {
		if qualifier == "" {
			return name
		}

		return qualifier + "." + name
	}

	clauses := []Clause{BooleanFlag{Expr: col("deleted_at") + " IS NULL"}}

	if platformID != "" {
		clauses = append(clauses, Equals{Column: col("platform_id"), Value: platformID})
	}

	return And(clauses...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

	return r.Replace(s)
}
