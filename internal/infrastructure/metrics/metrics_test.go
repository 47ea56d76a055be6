package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/projects/:id", func(c fiber.Ctx) error {
		return c.SendString(c.Params("id"))
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teapot")
	})

	for _, path := range []string{"/projects/a", "/projects/b", "/boom"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/projects/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/boom", "418")))
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := New()
	m.RecordCreated("project")
	m.RecordCreated("project")
	m.RecordSignup("employer")

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `talentboard_content_created_total{kind="project"} 2`), text)
	assert.True(t, strings.Contains(text, `talentboard_signups_total{user_type="employer"} 1`), text)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordCreated("post")
	m.RecordSignup("startup")
	assert.Nil(t, m.Registry())
}
