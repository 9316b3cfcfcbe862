package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kmf229/op-net-rate/internal/decomp"
)

// FailureMessage is the single generic banner shown for any fetch failure.
// Callers still receive the underlying error for differentiated handling.
const FailureMessage = "Failed to load data. Please try again."

// maxDetailBytes caps how much of an unparseable error body is kept.
const maxDetailBytes = 200

// Alerter receives the generic failure banner. Satisfied by notify.Center.
type Alerter interface {
	Error(message string) int64
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error (%d): %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("api error (%d)", e.Code)
}

// Options parameterise the dashboard API client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the net-rate dashboard API.
type Client struct {
	opts    Options
	logger  zerolog.Logger
	client  *http.Client
	alerter Alerter
	baseURL string
}

// NewClient constructs an API client. alerter may be nil to skip banners.
func NewClient(opts Options, alerter Alerter, logger zerolog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}

	return &Client{
		opts:    opts,
		logger:  logger.With().Str("component", "api_client").Logger(),
		client:  &http.Client{Timeout: timeout},
		alerter: alerter,
		baseURL: baseURL,
	}
}

// GetJSON issues a GET and decodes a 2xx JSON body into v. Every failure —
// transport, status, or decode — is logged, surfaced as one generic banner,
// and returned to the caller. No retries: a failure is terminal for the call.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(path, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "netrate/1.0")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return c.fail(path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(path, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(path, statusError(resp.StatusCode, payload))
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return c.fail(path, fmt.Errorf("decode response: %w", err))
	}

	return nil
}

func (c *Client) fail(path string, err error) error {
	c.logger.Error().Err(err).Str("path", path).Msg("api request failed")
	if c.alerter != nil {
		c.alerter.Error(FailureMessage)
	}
	return err
}

func statusError(code int, payload []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Error != "" {
			return &StatusError{Code: code, Detail: body.Error}
		}
		if body.Message != "" {
			return &StatusError{Code: code, Detail: body.Message}
		}
	}
	detail := strings.TrimSpace(string(payload))
	if len(detail) > maxDetailBytes {
		cut := maxDetailBytes
		for cut > 0 && !utf8.RuneStart(detail[cut]) {
			cut--
		}
		detail = detail[:cut]
	}
	return &StatusError{Code: code, Detail: detail}
}

// WaterfallQuery selects the comparison window for the decomposition.
type WaterfallQuery struct {
	ViewType string // MTD, QTD, or YTD
	Month    int
	Year     int
	RegionID string
}

// Waterfall fetches the decomposition for a comparison window.
func (c *Client) Waterfall(ctx context.Context, q WaterfallQuery) (decomp.Decomposition, error) {
	values := url.Values{}
	if q.ViewType != "" {
		values.Set("view_type", strings.ToUpper(q.ViewType))
	}
	if q.Month > 0 {
		values.Set("current_month", strconv.Itoa(q.Month))
	}
	if q.Year > 0 {
		values.Set("current_year", strconv.Itoa(q.Year))
	}
	if q.RegionID != "" {
		values.Set("region_id", q.RegionID)
	}

	var d decomp.Decomposition
	if err := c.GetJSON(ctx, "/api/waterfall", values, &d); err != nil {
		return decomp.Decomposition{}, err
	}
	return d, nil
}

// DrillDownQuery selects the entity level and window behind one driver.
type DrillDownQuery struct {
	Driver   string
	Level    string // region, market, clinic, or therapist
	ParentID string
	ViewType string
	Month    int
	Year     int
}

// DrillDownRow is one entity's figures with prior-period comparison fields.
type DrillDownRow struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	LicenseType        string          `json:"license_type,omitempty"`
	Visits             int64           `json:"visits"`
	AvgNetRate         decimal.Decimal `json:"avg_net_rate"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	UnitsPerVisit      decimal.Decimal `json:"units_per_visit"`
	CopayExpected      decimal.Decimal `json:"total_copay_expected"`
	CopayCollected     decimal.Decimal `json:"total_copay_collected"`
	Writeoffs          decimal.Decimal `json:"total_writeoffs"`
	PriorVisits        int64           `json:"prior_visits"`
	PriorAvgNetRate    decimal.Decimal `json:"prior_avg_net_rate"`
	PriorUnitsPerVisit decimal.Decimal `json:"prior_units_per_visit"`
	PriorCopayExpected decimal.Decimal `json:"prior_copay_expected"`
	PriorCopayCollect  decimal.Decimal `json:"prior_copay_collected"`
	PriorWriteoffs     decimal.Decimal `json:"prior_writeoffs"`
}

// DrillDown fetches the detail rows behind one driver. The driver must be a
// canonical key; anchors have no drill-down.
func (c *Client) DrillDown(ctx context.Context, q DrillDownQuery) ([]DrillDownRow, error) {
	if _, ok := decomp.DriverByKey(q.Driver); !ok {
		return nil, fmt.Errorf("unknown driver %q", q.Driver)
	}

	values := url.Values{}
	if q.Level != "" {
		values.Set("level", q.Level)
	}
	if q.ParentID != "" {
		values.Set("parent_id", q.ParentID)
	}
	if q.ViewType != "" {
		values.Set("view_type", strings.ToUpper(q.ViewType))
	}
	if q.Month > 0 {
		values.Set("current_month", strconv.Itoa(q.Month))
	}
	if q.Year > 0 {
		values.Set("current_year", strconv.Itoa(q.Year))
	}

	var rows []DrillDownRow
	if err := c.GetJSON(ctx, "/api/drill-down/"+url.PathEscape(q.Driver), values, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Region is one selectable region filter.
type Region struct {
	RegionID   int64  `json:"region_id"`
	RegionName string `json:"region_name"`
}

// Regions lists the regions available for filtering.
func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	var regions []Region
	if err := c.GetJSON(ctx, "/api/regions", nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

var (
	_ WaterfallFetcher = (*Client)(nil)
	_ DrillDownFetcher = (*Client)(nil)
	_ RegionFetcher    = (*Client)(nil)
)
