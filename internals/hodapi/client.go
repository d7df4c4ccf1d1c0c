// Package hodapi is the typed client for the HOD backend: one service per
// backend resource, hung off a single Client facade.
package hodapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 15 * time.Second

// Config holds the client configuration.
type Config struct {
	// BaseURL is the root of the HOD API, e.g. "https://obe.example.ac.in/api".
	BaseURL string

	// Token is the service token used when the request context carries none.
	Token string

	// Timeout bounds a single request. Defaults to 15 seconds.
	Timeout time.Duration
}

// Result is a successful backend response.
type Result[T any] struct {
	Data   T
	Status int
}

// Client is the aggregate facade used by every page.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration

	Programmes  *ProgrammeService
	Courses     *CourseService
	CLOs        *CLOService
	POPSO       *POPSOService
	Assignments *AssignmentService
	Reports     *ReportService
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("hodapi: BaseURL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("hodapi: invalid BaseURL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	c := &Client{
		baseURL: base,
		token:   strings.TrimSpace(cfg.Token),
		timeout: cfg.Timeout,
	}
	c.Programmes = &ProgrammeService{c: c}
	c.Courses = &CourseService{c: c}
	c.CLOs = &CLOService{c: c}
	c.POPSO = &POPSOService{c: c}
	c.Assignments = &AssignmentService{c: c}
	c.Reports = &ReportService{c: c}
	return c, nil
}

/* ===================== auth context ===================== */

type tokenKey struct{}

// WithToken attaches the caller's bearer token to ctx. Every request issued
// with that context sends it; requests without one fall back to Config.Token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(token))
}

// TokenFrom returns the token stored by WithToken.
func TokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

func (c *Client) tokenFor(ctx context.Context) string {
	if t := TokenFrom(ctx); t != "" {
		return t
	}
	return c.token
}

func (c *Client) timeoutFor(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	d := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < d {
			d = left
		}
	}
	return d, nil
}

/* ===================== transport ===================== */

// do sends one request and returns the raw body. Status >= 400 is returned
// as *APIError; a request that got no response is returned wrapped as
// *TransportError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (int, []byte, error) {
	timeout, err := c.timeoutFor(ctx)
	if err != nil {
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if tok := c.tokenFor(ctx); tok != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+tok)
	}
	if body != nil {
		a.JSONEncoder(sonic.Marshal).JSON(body)
	}
	a.Timeout(timeout)

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}

	code, raw, errs := a.Bytes()
	if len(errs) > 0 {
		err := errors.Join(errs...)
		// fasthttp reports its own timeout; surface it as a deadline
		if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return 0, nil, &TransportError{Method: method, Path: path, Err: err}
	}
	if code >= fiber.StatusBadRequest {
		return code, raw, newAPIError(method, path, code, raw)
	}
	return code, raw, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values, keys ...string) (Result[[]T], error) {
	code, raw, err := c.do(ctx, fiber.MethodGet, path, query, nil)
	if err != nil {
		return Result[[]T]{Status: code}, err
	}
	items, err := UnwrapList[T](raw, keys...)
	if err != nil {
		return Result[[]T]{Status: code}, fmt.Errorf("GET %s: %w", path, err)
	}
	return Result[[]T]{Data: items, Status: code}, nil
}

func sendObject[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, keys ...string) (Result[T], error) {
	code, raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return Result[T]{Status: code}, err
	}
	obj, err := UnwrapObject[T](raw, keys...)
	if err != nil {
		return Result[T]{Status: code}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return Result[T]{Data: obj, Status: code}, nil
}

func sendRaw(ctx context.Context, c *Client, method, path string, query url.Values, body any) (Result[RawJSON], error) {
	code, raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return Result[RawJSON]{Status: code}, err
	}
	return Result[RawJSON]{Data: RawJSON(raw), Status: code}, nil
}

func seg(v any) string {
	return fmt.Sprint(v)
}

// DashboardStats returns the department dashboard counters.
// GET /hod/dashboard/stats
func (c *Client) DashboardStats(ctx context.Context) (Result[DashboardStats], error) {
	return sendObject[DashboardStats](ctx, c, fiber.MethodGet, "/hod/dashboard/stats", nil, nil, "stats")
}
