package pagination

import "gorm.io/gorm"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a page/limit query binding shared by list endpoints.
type Params struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps page and limit to sane values.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Apply adds LIMIT/OFFSET to the statement.
func (p Params) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Limit(p.Limit).Offset(p.Offset())
}

// PageInfo describes the page of a list response.
type PageInfo struct {
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// BuildPageInfo derives page metadata from a total row count.
func BuildPageInfo(total int64, p Params) PageInfo {
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return PageInfo{
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pages,
	}
}
