package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(queryContext(t, ""))
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultSize, q.Size)
}

func TestFromContextClampsValues(t *testing.T) {
	q := FromContext(queryContext(t, "page=0&size=-5"))
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultSize, q.Size)

	q = FromContext(queryContext(t, "page=3&size=9999"))
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, MaxSize, q.Size)
}

func TestFromContextIgnoresGarbage(t *testing.T) {
	q := FromContext(queryContext(t, "page=abc&size=xyz"))
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultSize, q.Size)
}
