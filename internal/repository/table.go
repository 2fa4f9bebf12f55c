package repository

import (
	"context"
	"fmt"
	"strings"

	"equipecho/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Table is the generic record store for one table. Every column name used
// for ordering, filtering or updating must be in the table's allow-list.
type Table[M any] struct {
	db      *gorm.DB
	name    string
	columns map[string]struct{}
}

func NewTable[M any](db *gorm.DB, name string, columns ...string) *Table[M] {
	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	return &Table[M]{db: db, name: name, columns: allowed}
}

func (t *Table[M]) Name() string { return t.name }

func (t *Table[M]) checkColumns(op string, columns ...string) error {
	for _, c := range columns {
		if _, ok := t.columns[c]; !ok {
			return &domain.StoreError{Op: op, Table: t.name, Err: fmt.Errorf("%w %q", ErrUnknownColumn, c)}
		}
	}
	return nil
}

func (t *Table[M]) query(ctx context.Context, op string, order []Order) (*gorm.DB, error) {
	q := conn(ctx, t.db).Table(t.name)
	for _, o := range order {
		if err := t.checkColumns(op, o.Column); err != nil {
			return nil, err
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	return q, nil
}

// List returns every row in the given order.
func (t *Table[M]) List(ctx context.Context, order ...Order) ([]M, error) {
	q, err := t.query(ctx, "list", order)
	if err != nil {
		return nil, err
	}
	rows := make([]M, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, classify("list", t.name, err)
	}
	return rows, nil
}

// FilterEq returns the rows where column equals value.
func (t *Table[M]) FilterEq(ctx context.Context, column string, value any, order ...Order) ([]M, error) {
	if err := t.checkColumns("filter", column); err != nil {
		return nil, err
	}
	q, err := t.query(ctx, "filter", order)
	if err != nil {
		return nil, err
	}
	rows := make([]M, 0)
	if err := q.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).Find(&rows).Error; err != nil {
		return nil, classify("filter", t.name, err)
	}
	return rows, nil
}

// Search returns rows where any of the columns contains term, case-insensitively.
// An empty term behaves like List.
func (t *Table[M]) Search(ctx context.Context, columns []string, term string, order ...Order) ([]M, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return t.List(ctx, order...)
	}
	if err := t.checkColumns("search", columns...); err != nil {
		return nil, err
	}
	q, err := t.query(ctx, "search", order)
	if err != nil {
		return nil, err
	}

	pattern := "%" + escapeLike(term) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, c := range columns {
		conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", c))
		args = append(args, pattern)
	}

	rows := make([]M, 0)
	if err := q.Where(strings.Join(conds, " OR "), args...).Find(&rows).Error; err != nil {
		return nil, classify("search", t.name, err)
	}
	return rows, nil
}

func (t *Table[M]) Get(ctx context.Context, id int64) (*M, error) {
	var row M
	if err := conn(ctx, t.db).Table(t.name).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, classify("get", t.name, err)
	}
	return &row, nil
}

// Insert writes row and fills its generated fields.
func (t *Table[M]) Insert(ctx context.Context, row *M) error {
	if err := conn(ctx, t.db).Table(t.name).Create(row).Error; err != nil {
		return classify("insert", t.name, err)
	}
	return nil
}

// Update applies a partial change set and returns the stored row.
func (t *Table[M]) Update(ctx context.Context, id int64, changes map[string]any) (*M, error) {
	if len(changes) > 0 {
		cols := make([]string, 0, len(changes))
		for c := range changes {
			cols = append(cols, c)
		}
		if err := t.checkColumns("update", cols...); err != nil {
			return nil, err
		}

		res := conn(ctx, t.db).Table(t.name).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, classify("update", t.name, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("update %s %d: %w", t.name, id, domain.ErrNotFound)
		}
	}
	return t.Get(ctx, id)
}

func (t *Table[M]) Delete(ctx context.Context, id int64) error {
	res := conn(ctx, t.db).Table(t.name).Where("id = ?", id).Delete(new(M))
	if res.Error != nil {
		return classify("delete", t.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s %d: %w", t.name, id, domain.ErrNotFound)
	}
	return nil
}

// DeleteWhere removes every row where column equals value and reports how many went.
func (t *Table[M]) DeleteWhere(ctx context.Context, column string, value any) (int64, error) {
	if err := t.checkColumns("delete", column); err != nil {
		return 0, err
	}
	res := conn(ctx, t.db).Table(t.name).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Delete(new(M))
	if res.Error != nil {
		return 0, classify("delete", t.name, res.Error)
	}
	return res.RowsAffected, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
