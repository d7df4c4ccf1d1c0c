package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		query string
		want  PageParams
	}{
		{"", PageParams{}},
		{"?page=3", PageParams{Page: 3, PerPage: 25}},
		{"?limit=10", PageParams{Page: 1, PerPage: 10}},
		{"?page=0&per_page=5000", PageParams{Page: 1, PerPage: 200}},
		{"?page=x&limit=-4", PageParams{Page: 1, PerPage: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			app := fiber.New()
			var got PageParams
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParsePage(c, DefaultPageOpts)
				return nil
			})
			_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
