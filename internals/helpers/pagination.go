// helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

type PageOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Preset =====
var (
	DefaultPageOpts   = PageOptions{DefaultPerPage: 25, MaxPerPage: 200}
	DashboardPageOpts = PageOptions{DefaultPerPage: 50, MaxPerPage: 500}
)

// PageParams are the page/limit a caller asked for. The zero value means the
// caller asked for no paging and the backend default applies.
type PageParams struct {
	Page    int `json:"page,omitempty"`
	PerPage int `json:"per_page,omitempty"`
}

func (p PageParams) Paged() bool { return p.Page > 0 && p.PerPage > 0 }

// ParsePage reads page and per_page (or limit) from the query. Paging only
// starts when one of them is present; per_page is capped at opt.MaxPerPage.
func ParsePage(c *fiber.Ctx, opt PageOptions) PageParams {
	pageRaw := strings.TrimSpace(c.Query("page"))
	perRaw := strings.TrimSpace(firstNonEmpty(c.Query("per_page"), c.Query("limit")))
	if pageRaw == "" && perRaw == "" {
		return PageParams{}
	}

	page := atoiDefault(pageRaw, DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	per := atoiDefault(perRaw, opt.DefaultPerPage)
	if per < 1 {
		per = opt.DefaultPerPage
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	return PageParams{Page: page, PerPage: per}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
