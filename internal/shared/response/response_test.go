package response_test

import (
	"net/http/httptest"
	"testing"

	"go-uerp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	t.Run("middle page has next and prev", func(t *testing.T) {
		meta := response.NewPaginationMeta(95, 2, 20)

		assert.Equal(t, 2, meta.Page)
		assert.Equal(t, 20, meta.Limit)
		assert.Equal(t, int64(95), meta.Total)
		assert.Equal(t, 5, meta.TotalPages)
		assert.True(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
	})

	t.Run("first page has no prev", func(t *testing.T) {
		meta := response.NewPaginationMeta(95, 1, 20)

		assert.True(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})

	t.Run("last page has no next", func(t *testing.T) {
		meta := response.NewPaginationMeta(95, 5, 20)

		assert.False(t, meta.HasNext)
		assert.True(t, meta.HasPrev)
		assert.Equal(t, 5, meta.TotalPages)
	})

	t.Run("exact multiple of limit", func(t *testing.T) {
		meta := response.NewPaginationMeta(100, 5, 20)

		assert.Equal(t, 5, meta.TotalPages)
		assert.False(t, meta.HasNext)
	})

	t.Run("empty result set", func(t *testing.T) {
		meta := response.NewPaginationMeta(0, 1, 20)

		assert.Equal(t, 0, meta.TotalPages)
		assert.False(t, meta.HasNext)
		assert.False(t, meta.HasPrev)
	})
}

func newTestContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParsePageQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := response.ParsePageQuery(newTestContext(t, ""), 0)

		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 20, q.Limit)
		assert.Equal(t, 0, q.Offset())
	})

	t.Run("explicit values", func(t *testing.T) {
		q := response.ParsePageQuery(newTestContext(t, "page=3&limit=50"), 20)

		assert.Equal(t, 3, q.Page)
		assert.Equal(t, 50, q.Limit)
		assert.Equal(t, 100, q.Offset())
	})

	t.Run("limit clamped to max", func(t *testing.T) {
		q := response.ParsePageQuery(newTestContext(t, "limit=5000"), 20)

		assert.Equal(t, response.MaxLimit, q.Limit)
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		q := response.ParsePageQuery(newTestContext(t, "page=-1&limit=abc"), 12)

		assert.Equal(t, 1, q.Page)
		assert.Equal(t, 12, q.Limit)
	})
}
