package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParams(t *testing.T) {
	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return nil
	})

	tests := []struct {
		name   string
		url    string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "/", 1, DefaultLimit, 0},
		{"explicit", "/?page=3&limit=10", 3, 10, 20},
		{"capped at max", "/?limit=500", 1, MaxLimit, 0},
		{"garbage falls back", "/?page=-2&limit=zero", 1, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			resp.Body.Close()

			require.NotNil(t, got)
			assert.Equal(t, tt.page, got.Page)
			assert.Equal(t, tt.limit, got.Limit)
			assert.Equal(t, tt.offset, got.Offset)
		})
	}
}

func TestNewResponse(t *testing.T) {
	params := &Params{Page: 2, Limit: 20, Offset: 20}
	resp := NewResponse([]string{"a", "b"}, params, 45)

	assert.Equal(t, []string{"a", "b"}, resp.Data)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
	assert.True(t, resp.Meta.HasPrev)
}

func TestGetMetaLastPage(t *testing.T) {
	meta := GetMeta(&Params{Page: 3, Limit: 20, Offset: 40}, 45)

	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
