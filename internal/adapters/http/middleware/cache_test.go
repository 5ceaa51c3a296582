package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/live", NoCacheHeaders(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/live", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
}

func TestPrivateCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/report", PrivateCacheHeaders(time.Minute), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/missing", PrivateCacheHeaders(time.Minute), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).SendString("not found")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/report", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "private, max-age=60", resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Cache-Control"))
}
