package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/cardsched/internal/card"
	"github.com/at-ishikawa/cardsched/internal/fact"
	"github.com/at-ishikawa/cardsched/internal/revlog"
	"github.com/at-ishikawa/cardsched/internal/statistics"
)

// SQLStore implements Store on MySQL or SQLite.
type SQLStore struct {
	db *sqlx.DB
	// q is db, or the transaction inside InTx.
	q sqlx.ExtContext
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, q: db}
}

// prepare expands slice arguments and rebinds placeholders for the driver.
func (s *SQLStore) prepare(query string, args []any) (string, []any, error) {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, fmt.Errorf("sqlx.In() > %w", err)
	}
	return s.q.Rebind(query), args, nil
}

func (s *SQLStore) QueryScalar(ctx context.Context, q Query) (float64, error) {
	query, args, err := s.prepare(q.SQL())
	if err != nil {
		return 0, err
	}
	var v sql.NullFloat64
	if err := sqlx.GetContext(ctx, s.q, &v, query, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(%s) > %w", q.Select, err)
	}
	return v.Float64, nil
}

func (s *SQLStore) QueryItems(ctx context.Context, q Query) ([]Item, error) {
	q.Select = "c.id, c.fact_id, c.due"
	query, args, err := s.prepare(q.SQL())
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := sqlx.SelectContext(ctx, s.q, &items, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(items) > %w", err)
	}
	return items, nil
}

// Update sets values on the rows of table matching where. Columns are written in name order.
func (s *SQLStore) Update(ctx context.Context, table string, values Values, where string, args ...any) (int64, error) {
	if len(values) == 0 {
		return 0, nil
	}
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	slices.Sort(columns)

	sets := make([]string, 0, len(columns))
	setArgs := make([]any, 0, len(columns)+len(args))
	for _, column := range columns {
		if expr, ok := values[column].(Expr); ok {
			sets = append(sets, fmt.Sprintf("`%s` = %s", column, expr))
			continue
		}
		sets = append(sets, fmt.Sprintf("`%s` = ?", column))
		setArgs = append(setArgs, values[column])
	}

	statement := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(sets, ", "))
	if where != "" {
		statement += " WHERE " + where
	}
	return s.Exec(ctx, statement, append(setArgs, args...)...)
}

// Exec runs a statement and returns the number of affected rows.
func (s *SQLStore) Exec(ctx context.Context, statement string, args ...any) (int64, error) {
	query, args, err := s.prepare(statement, args)
	if err != nil {
		return 0, err
	}
	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext() > %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return n, nil
}

func (s *SQLStore) Card(ctx context.Context, id int64) (*card.Card, error) {
	var c card.Card
	err := sqlx.GetContext(ctx, s.q, &c, s.q.Rebind("SELECT * FROM cards WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(card) > %w", err)
	}
	return &c, nil
}

const insertCardQuery = "INSERT INTO cards" +
	" (fact_id, ordinal, created, modified, type, queue, `interval`, last_interval, due, last_due," +
	" factor, last_factor, reps, successive, lapses, yes_count, no_count, first_answered, average_time, review_time)" +
	" VALUES (:fact_id, :ordinal, :created, :modified, :type, :queue, :interval, :last_interval, :due, :last_due," +
	" :factor, :last_factor, :reps, :successive, :lapses, :yes_count, :no_count, :first_answered, :average_time, :review_time)"

func (s *SQLStore) CreateCard(ctx context.Context, c *card.Card) error {
	result, err := sqlx.NamedExecContext(ctx, s.q, insertCardQuery, c)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(cards) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	c.ID = id
	return nil
}

func (s *SQLStore) Fact(ctx context.Context, id int64) (*fact.Fact, error) {
	var f fact.Fact
	err := sqlx.GetContext(ctx, s.q, &f, s.q.Rebind("SELECT id, tags, modified FROM facts WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fact %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(fact) > %w", err)
	}
	return &f, nil
}

func (s *SQLStore) CreateFact(ctx context.Context, f *fact.Fact) error {
	result, err := sqlx.NamedExecContext(ctx, s.q,
		"INSERT INTO facts (tags, modified) VALUES (:tags, :modified)", f)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(facts) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	f.ID = id
	return nil
}

func (s *SQLStore) UpdateFactTags(ctx context.Context, f *fact.Fact) error {
	if _, err := s.Update(ctx, "facts", Values{"tags": f.Tags, "modified": f.Modified}, "id = ?", f.ID); err != nil {
		return fmt.Errorf("update facts > %w", err)
	}
	return nil
}

func (s *SQLStore) SyncCardTags(ctx context.Context, factID int64) error {
	f, err := s.Fact(ctx, factID)
	if err != nil {
		return err
	}
	tags := fact.ParseTags(f.Tags)
	tagIDs, err := s.ensureTags(ctx, tags)
	if err != nil {
		return err
	}

	if _, err := s.Exec(ctx,
		"DELETE FROM card_tags WHERE src = 0 AND card_id IN (SELECT id FROM cards WHERE fact_id = ?)", factID); err != nil {
		return fmt.Errorf("delete card_tags > %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	var cardIDs []int64
	if err := sqlx.SelectContext(ctx, s.q, &cardIDs,
		s.q.Rebind("SELECT id FROM cards WHERE fact_id = ? ORDER BY id"), factID); err != nil {
		return fmt.Errorf("db.SelectContext(card ids) > %w", err)
	}
	for _, cardID := range cardIDs {
		for _, tagID := range tagIDs {
			if _, err := s.Exec(ctx,
				"INSERT INTO card_tags (card_id, tag_id, src) VALUES (?, ?, 0)", cardID, tagID); err != nil {
				return fmt.Errorf("insert card_tags > %w", err)
			}
		}
	}
	return nil
}

// ensureTags returns the ids of tags, inserting the ones not known yet.
func (s *SQLStore) ensureTags(ctx context.Context, tags []string) ([]int64, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	existing, err := s.tagRows(ctx, tags)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		idx := slices.IndexFunc(existing, func(r tagRow) bool { return strings.EqualFold(r.Tag, tag) })
		if idx >= 0 {
			if !slices.Contains(ids, existing[idx].ID) {
				ids = append(ids, existing[idx].ID)
			}
			continue
		}
		result, err := s.q.ExecContext(ctx, s.q.Rebind("INSERT INTO tags (tag) VALUES (?)"), tag)
		if err != nil {
			return nil, fmt.Errorf("db.ExecContext(tags) > %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("result.LastInsertId() > %w", err)
		}
		existing = append(existing, tagRow{ID: id, Tag: tag})
		ids = append(ids, id)
	}
	return ids, nil
}

type tagRow struct {
	ID  int64  `db:"id"`
	Tag string `db:"tag"`
}

func (s *SQLStore) tagRows(ctx context.Context, tags []string) ([]tagRow, error) {
	query, args, err := s.prepare("SELECT id, tag FROM tags WHERE tag IN (?) ORDER BY id", []any{tags})
	if err != nil {
		return nil, err
	}
	var rows []tagRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tags) > %w", err)
	}
	return rows, nil
}

// TagIDs returns the ids of the known tags among tags. Unknown tags are skipped.
func (s *SQLStore) TagIDs(ctx context.Context, tags []string) ([]int64, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	rows, err := s.tagRows(ctx, tags)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (s *SQLStore) AppendReview(ctx context.Context, e revlog.Entry) error {
	_, err := sqlx.NamedExecContext(ctx, s.q,
		"INSERT INTO review_history"+
			" (card_id, time, last_interval, next_interval, ease, delay, last_factor, next_factor,"+
			" reps, thinking_time, yes_count, no_count, kind)"+
			" VALUES (:card_id, :time, :last_interval, :next_interval, :ease, :delay, :last_factor, :next_factor,"+
			" :reps, :thinking_time, :yes_count, :no_count, :kind)", e)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(review_history) > %w", err)
	}
	return nil
}

// CountReviews counts the answers given since the timestamp. With firstOnly,
// only first answers of new cards are counted.
func (s *SQLStore) CountReviews(ctx context.Context, since float64, firstOnly bool) (int, error) {
	query := "SELECT count(*) FROM review_history WHERE time >= ?"
	if firstOnly {
		query += " AND reps = 1"
	}
	var n int
	if err := sqlx.GetContext(ctx, s.q, &n, s.q.Rebind(query), since); err != nil {
		return 0, fmt.Errorf("db.GetContext(review count) > %w", err)
	}
	return n, nil
}

func (s *SQLStore) Reviews(ctx context.Context, since float64) ([]revlog.Entry, error) {
	var entries []revlog.Entry
	if err := sqlx.SelectContext(ctx, s.q, &entries, s.q.Rebind(
		"SELECT card_id, time, last_interval, next_interval, ease, delay, last_factor, next_factor,"+
			" reps, thinking_time, yes_count, no_count, kind"+
			" FROM review_history WHERE time >= ? ORDER BY time"), since); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_history) > %w", err)
	}
	return entries, nil
}

// Stats returns the stats row of kind and day, or an unsaved empty one.
func (s *SQLStore) Stats(ctx context.Context, kind statistics.Kind, day string) (*statistics.Stats, error) {
	var row statsRow
	err := sqlx.GetContext(ctx, s.q, &row, s.q.Rebind("SELECT * FROM stats WHERE type = ? AND day = ?"), kind, day)
	if errors.Is(err, sql.ErrNoRows) {
		return &statistics.Stats{Kind: kind, Day: day}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(stats) > %w", err)
	}
	return row.toStats(), nil
}

func (s *SQLStore) SaveStats(ctx context.Context, st *statistics.Stats) error {
	row := newStatsRow(st)
	if st.ID != 0 {
		_, err := sqlx.NamedExecContext(ctx, s.q, "UPDATE stats SET "+statsAssignments()+" WHERE id = :id", row)
		if err != nil {
			return fmt.Errorf("db.NamedExecContext(update stats) > %w", err)
		}
		return nil
	}

	columns := statsColumns()
	result, err := sqlx.NamedExecContext(ctx, s.q, fmt.Sprintf("INSERT INTO stats (%s) VALUES (:%s)",
		strings.Join(columns, ", "), strings.Join(columns, ", :")), row)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(insert stats) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	st.ID = id
	return nil
}

func (s *SQLStore) DeckVars(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		Name  string `db:"name"`
		Value string `db:"value"`
	}
	if err := sqlx.SelectContext(ctx, s.q, &rows, "SELECT name, value FROM deck_vars"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(deck_vars) > %w", err)
	}
	vars := make(map[string]string, len(rows))
	for _, r := range rows {
		vars[r.Name] = r.Value
	}
	return vars, nil
}

func (s *SQLStore) SetDeckVar(ctx context.Context, name, value string) error {
	n, err := s.Update(ctx, "deck_vars", Values{"value": value}, "name = ?", name)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// MySQL reports zero affected rows when the value is unchanged.
	var exists int
	if err := sqlx.GetContext(ctx, s.q, &exists,
		s.q.Rebind("SELECT count(*) FROM deck_vars WHERE name = ?"), name); err != nil {
		return fmt.Errorf("db.GetContext(deck_vars) > %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := s.Exec(ctx, "INSERT INTO deck_vars (name, value) VALUES (?, ?)", name, value); err != nil {
		return fmt.Errorf("insert deck_vars > %w", err)
	}
	return nil
}

// InTx runs fn within a database transaction. Nested calls reuse the running transaction.
func (s *SQLStore) InTx(ctx context.Context, fn func(Store) error) error {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	if err := fn(&SQLStore{db: s.db, q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("tx.Rollback() > %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
