// Package orm is a thin fluent wrapper over *gorm.DB used by repositories
// for filtered and paginated reads.
package orm

import (
	"gorm.io/gorm"
)

const (
	DefaultLimit = 15
	MaxLimit     = 100
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}

type Query struct {
	db       *gorm.DB
	preloads []string
}

func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v), preloads: q.preloads}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...), preloads: q.preloads}
}

// WhereIf applies the condition only when ok is true.
func (q *Query) WhereIf(ok bool, query interface{}, args ...interface{}) *Query {
	if !ok {
		return q
	}
	return q.Where(query, args...)
}

// Preload is applied to the final read only, never to the count query.
func (q *Query) Preload(association string) *Query {
	preloads := append(append([]string(nil), q.preloads...), association)
	return &Query{db: q.db, preloads: preloads}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value), preloads: q.preloads}
}

func (q *Query) Get(dest interface{}) error {
	return q.reader().Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.reader().First(dest).Error
}

func (q *Query) reader() *gorm.DB {
	tx := q.db.Session(&gorm.Session{})
	for _, p := range q.preloads {
		tx = tx.Preload(p)
	}
	return tx
}

// Paginate counts the matching rows and loads page into dest. The query must
// carry a Model. Out-of-range page and limit values are clamped.
func (q *Query) Paginate(page, limit int, dest interface{}) (Pagination, error) {
	p := Normalize(page, limit)

	if err := q.db.Session(&gorm.Session{}).Count(&p.Total).Error; err != nil {
		return p, err
	}
	if p.Total > 0 {
		p.LastPage = int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
	} else {
		p.LastPage = 1
	}

	err := q.reader().
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(dest).Error
	return p, err
}

// Normalize clamps page and limit into their valid ranges.
func Normalize(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}
