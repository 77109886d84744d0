package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"studiocal/internal/calendar"
	appLog "studiocal/internal/log"
	"studiocal/internal/model"
)

// ErrUnauthorized is returned when the portal rejects the credentials.
var ErrUnauthorized = errors.New("admin: login rejected")

// Options configures a Client.
type Options struct {
	BaseURL     string
	Email       string
	Password    string
	LoginPath   string // default "/login"
	CoursesPath string // default "/courses"
	Timeout     time.Duration
}

// Client lists courses from the admin portal. It logs in lazily on first
// use and keeps the session cookie; a 401 on listing triggers one re-login.
type Client struct {
	opts   Options
	client *http.Client

	mu       sync.Mutex
	loggedIn bool
}

// NewClient builds a Client with its own cookie jar.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("admin: base URL is empty")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("admin: base URL: %w", err)
	}
	if opts.LoginPath == "" {
		opts.LoginPath = "/login"
	}
	if opts.CoursesPath == "" {
		opts.CoursesPath = "/courses"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		opts: opts,
		client: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
		},
	}, nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.opts.BaseURL, "/") + path
}

// LogIn posts the credentials and stores the session cookie.
func (c *Client) LogIn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logInLocked(ctx)
}

func (c *Client) logInLocked(ctx context.Context) error {
	form := url.Values{}
	form.Set("email", c.opts.Email)
	form.Set("password", c.opts.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(c.opts.LoginPath), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	appLog.Info("admin login start", "url", c.opts.BaseURL, "email", c.opts.Email)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("admin: login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.loggedIn = false
		return ErrUnauthorized
	case resp.StatusCode >= 400:
		c.loggedIn = false
		return fmt.Errorf("admin: login: %s", resp.Status)
	}

	c.loggedIn = true
	appLog.Info("admin login success", "url", c.opts.BaseURL)
	return nil
}

// FindCourses lists the courses scheduled in ym.
func (c *Client) FindCourses(ctx context.Context, ym calendar.YearMonth) ([]model.Course, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		if err := c.logInLocked(ctx); err != nil {
			return nil, err
		}
	}

	courses, status, err := c.list(ctx, ym)
	if status == http.StatusUnauthorized {
		appLog.Info("admin session expired; logging in again", "month", ym.String())
		if err := c.logInLocked(ctx); err != nil {
			return nil, err
		}
		courses, _, err = c.list(ctx, ym)
	}
	if err != nil {
		return nil, err
	}

	appLog.Info("admin courses listed", "month", ym.String(), "count", len(courses))
	return courses, nil
}

func (c *Client) list(ctx context.Context, ym calendar.YearMonth) ([]model.Course, int, error) {
	q := url.Values{}
	q.Set("month", ym.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(c.opts.CoursesPath)+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("admin: list courses: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, fmt.Errorf("admin: list courses: %s", resp.Status)
	}

	var courses []model.Course
	if err := json.NewDecoder(resp.Body).Decode(&courses); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("admin: decode courses: %w", err)
	}
	return courses, resp.StatusCode, nil
}
