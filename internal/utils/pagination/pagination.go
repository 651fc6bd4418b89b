// Package pagination turns request-level page/perPage/sort parameters into a
// bounded count-and-fetch against a gorm query and wraps the result in a page
// envelope.
package pagination

import (
	"gorm.io/gorm"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10

	SortAsc  = "asc"
	SortDesc = "desc"
	SortHot  = "hot"
)

type Params struct {
	Page    int
	PerPage int
}

type Meta struct {
	TotalPage   int  `json:"totalPage"`
	CurrentPage int  `json:"currentPage"`
	HasPrev     bool `json:"hasPrev"`
	HasNext     bool `json:"hasNext"`
}

type Page[T any] struct {
	Results    []T  `json:"results"`
	Pagination Meta `json:"pagination"`
}

// ResolveSort maps a symbolic sort token to a concrete order clause. Unknown
// or empty tokens fall back to newest-first.
func ResolveSort(token string) string {
	switch token {
	case SortAsc:
		return "created_at asc"
	case SortHot:
		return "collects_count desc"
	default:
		return "created_at desc"
	}
}

// ResolveUpdatedSort maps asc/desc onto the update timestamp; used by the
// entity listings that have no hot ranking.
func ResolveUpdatedSort(token string) string {
	if token == SortAsc {
		return "updated_at asc"
	}
	return "updated_at desc"
}

// Paginate counts the rows matching query, clamps the requested page into
// range and fetches one page ordered by order. The query must carry its model
// and filter conditions; Paginate adds only order, offset and limit.
//
// An empty result set pins currentPage to 1 with both boundary flags false.
func Paginate[T any](query *gorm.DB, order string, params Params) (Page[T], error) {
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}
	perPage := params.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	var totalResult int64
	if err := query.Session(&gorm.Session{}).Count(&totalResult).Error; err != nil {
		return Page[T]{}, err
	}

	totalPage := int((totalResult + int64(perPage) - 1) / int64(perPage))

	if totalPage == 0 {
		return Page[T]{
			Results:    []T{},
			Pagination: Meta{TotalPage: 0, CurrentPage: 1},
		}, nil
	}

	currentPage := page
	if currentPage > totalPage {
		currentPage = totalPage
	}

	skip := (currentPage - 1) * perPage

	results := []T{}
	if err := query.
		Order(order).
		Offset(skip).
		Limit(perPage).
		Find(&results).Error; err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Results: results,
		Pagination: Meta{
			TotalPage:   totalPage,
			CurrentPage: currentPage,
			HasPrev:     currentPage > 1,
			HasNext:     currentPage < totalPage,
		},
	}, nil
}

// All is the no-pagination mode used by admin listings: every matching row in
// one sorted slice, no envelope.
func All[T any](query *gorm.DB, order string) ([]T, error) {
	results := []T{}
	if err := query.Order(order).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
