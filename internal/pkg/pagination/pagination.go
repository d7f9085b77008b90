// Package pagination pages the portfolio's list endpoints. Clients pass
// ?page= and ?size=; out-of-range values are clamped rather than rejected.
package pagination

import (
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 20
	MaxSize     = 100
)

// Query is the page window requested by the client.
type Query struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// FromContext reads ?page= and ?size= from the request. Garbage or missing
// values fall back to the first page with the default size.
func FromContext(c *gin.Context) Query {
	var q Query
	_ = c.ShouldBindQuery(&q)
	return q.clamped()
}

func (q Query) clamped() Query {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	switch {
	case q.Size < 1:
		q.Size = DefaultSize
	case q.Size > MaxSize:
		q.Size = MaxSize
	}
	return q
}

func (q Query) offset() int { return (q.Page - 1) * q.Size }

// Paginate counts tx, loads the requested window into dest and returns the
// page metadata carried by the response envelope.
func Paginate[T any](tx *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	q = q.clamped()

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := tx.Offset(q.offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	pages := int(total / int64(q.Size))
	if total%int64(q.Size) != 0 {
		pages++
	}
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}, nil
}
