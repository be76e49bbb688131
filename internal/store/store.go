// Package store provides the storage collaborator of the scheduler and its SQL implementation.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/fact"
	"github.com/at-ishikawa/cardsched/internal/revlog"
	"github.com/at-ishikawa/cardsched/internal/statistics"
)

var ErrNotFound = errors.New("not found")

// Item is the part of a card row needed to queue it.
type Item struct {
	CardID int64   `db:"id"`
	FactID int64   `db:"fact_id"`
	Due    float64 `db:"due"`
}

// Values are column values for Update. An Expr value is written as raw SQL.
type Values map[string]any

// Expr is a SQL expression used as a column value.
type Expr string

//go:generate mockgen -source=store.go -destination=../mocks/store/mock_store.go -package=mock_store Store

// Store is everything the scheduler reads from and writes to the collection.
type Store interface {
	// QueryScalar returns the single value selected by q, or 0 when it is NULL.
	QueryScalar(ctx context.Context, q Query) (float64, error)
	// QueryItems returns the queue items of the cards matched by q.
	QueryItems(ctx context.Context, q Query) ([]Item, error)
	Update(ctx context.Context, table string, values Values, where string, args ...any) (int64, error)
	Exec(ctx context.Context, statement string, args ...any) (int64, error)

	Card(ctx context.Context, id int64) (*card.Card, error)
	CreateCard(ctx context.Context, c *card.Card) error
	Fact(ctx context.Context, id int64) (*fact.Fact, error)
	CreateFact(ctx context.Context, f *fact.Fact) error
	UpdateFactTags(ctx context.Context, f *fact.Fact) error
	// SyncCardTags rebuilds the card_tags index of every card of the fact.
	SyncCardTags(ctx context.Context, factID int64) error
	TagIDs(ctx context.Context, tags []string) ([]int64, error)

	AppendReview(ctx context.Context, e revlog.Entry) error
	CountReviews(ctx context.Context, since float64, firstOnly bool) (int, error)
	Reviews(ctx context.Context, since float64) ([]revlog.Entry, error)

	Stats(ctx context.Context, kind statistics.Kind, day string) (*statistics.Stats, error)
	SaveStats(ctx context.Context, s *statistics.Stats) error

	DeckVars(ctx context.Context) (map[string]string, error)
	SetDeckVar(ctx context.Context, name, value string) error

	// InTx runs fn with a Store bound to a single transaction.
	InTx(ctx context.Context, fn func(Store) error) error
}

// Query selects from the cards table aliased as c.
type Query struct {
	Select  string
	Where   []string
	Args    []any
	OrderBy string
	Limit   int
}

// CardQuery starts a query over cards matching cond.
func CardQuery(cond string, args ...any) Query {
	return Query{Where: []string{cond}, Args: args}
}

// And returns a copy of q that also requires cond.
func (q Query) And(cond string, args ...any) Query {
	q.Where = append(append([]string(nil), q.Where...), cond)
	q.Args = append(append([]any(nil), q.Args...), args...)
	return q
}

func (q Query) Count() Query {
	q.Select = "count(*)"
	return q
}

func (q Query) Order(orderBy string, limit int) Query {
	q.OrderBy = orderBy
	q.Limit = limit
	return q
}

// SQL renders the query with ? placeholders.
func (q Query) SQL() (string, []any) {
	selectExpr := q.Select
	if selectExpr == "" {
		selectExpr = "count(*)"
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectExpr)
	b.WriteString(" FROM cards c")
	if len(q.Where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.Where, " AND "))
	}
	args := q.Args
	if q.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy)
	}
	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(append([]any(nil), args...), q.Limit)
	}
	return b.String(), args
}
