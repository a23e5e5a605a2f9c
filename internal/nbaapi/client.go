// Package nbaapi is the client for the PlayerDataTotals query endpoint of rest.nbaapi.com.
// Every call is a single stateless GET; there is no caching and no retry.
package nbaapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/maxviazov/nba-totals/internal/metrics"
	"github.com/maxviazov/nba-totals/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls how the client reaches the upstream.
type Config struct {
	// BaseURL is the scheme and host; the query path is appended. A full query URL is accepted too.
	BaseURL string
	// HTTPClient overrides the transport. When nil a client with Timeout is built.
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	// MaxPages caps FetchAllByName.
	MaxPages int
	Logger   zerolog.Logger
	Metrics  *metrics.Recorder
}

// Client issues the three upstream query shapes and decodes their results.
type Client struct {
	endpoint   string
	httpClient httpDoer
	userAgent  string
	maxPages   int
	log        zerolog.Logger
	metrics    *metrics.Recorder
	validate   *validator.Validate
}

// NewClient builds a Client, filling defaults for anything left empty.
func NewClient(cfg Config) *Client {
	return &Client{
		endpoint:   normalizeBaseURL(cfg.BaseURL) + queryPath,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		log:        cfg.Logger.With().Str("module", "nbaapi").Logger(),
		metrics:    cfg.Metrics,
		validate:   validator.New(),
	}
}

type pageQuery struct {
	Page     int `validate:"gte=1"`
	PageSize int `validate:"gte=1"`
}

// FetchBySeasonAndTeam returns one team's roster totals for a season, sorted by player name.
// The team code is passed through unchecked; the upstream answers unknown codes with an empty list or an error.
func (c *Client) FetchBySeasonAndTeam(ctx context.Context, season int, team string) ([]model.PlayerSeasonRecord, error) {
	params := url.Values{}
	params.Set("season", strconv.Itoa(season))
	params.Set("team", team)
	params.Set("sortBy", sortByPlayerName)
	params.Set("ascending", "true")
	params.Set("pageNumber", "1")
	params.Set("pageSize", strconv.Itoa(RosterPageSize))

	start := time.Now()
	status, body, err := c.get(ctx, params)
	if err == nil {
		var recs []model.PlayerSeasonRecord
		recs, err = decodeArray(status, body)
		if err == nil {
			c.finish(callBySeasonTeam, start, params, metrics.OutcomeOK, len(recs), nil)
			return recs, nil
		}
	}
	c.finish(callBySeasonTeam, start, params, outcomeOf(err), 0, err)
	return nil, err
}

// FetchByNamePaged returns one page of a name search. Zero page and pageSize fall back to 1 and SearchPageSize.
// An empty list means either no match or a page past the end; the two cannot be told apart from one call.
func (c *Client) FetchByNamePaged(ctx context.Context, name string, page, pageSize int) ([]model.PlayerSeasonRecord, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = SearchPageSize
	}
	if err := c.validate.Struct(pageQuery{Page: page, PageSize: pageSize}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	params := url.Values{}
	params.Set("playerName", name)
	params.Set("sortBy", sortByPlayerName)
	params.Set("ascending", "true")
	params.Set("pageNumber", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	start := time.Now()
	status, body, err := c.get(ctx, params)
	if err == nil {
		var recs []model.PlayerSeasonRecord
		recs, err = decodeArray(status, body)
		if err == nil {
			c.finish(callByNamePaged, start, params, metrics.OutcomeOK, len(recs), nil)
			return recs, nil
		}
	}
	c.finish(callByNamePaged, start, params, outcomeOf(err), 0, err)
	return nil, err
}

// FetchByNameAndSeason returns a player's rows for one season; traded players can have several.
// Both "not found" shapes of the upstream (HTTP 404, or 200 with an object carrying "status") yield an empty list.
func (c *Client) FetchByNameAndSeason(ctx context.Context, name string, season, pageSize int) ([]model.PlayerSeasonRecord, error) {
	if pageSize <= 0 {
		pageSize = SeasonPageSize
	}
	params := url.Values{}
	params.Set("playerName", name)
	params.Set("season", strconv.Itoa(season))
	params.Set("pageSize", strconv.Itoa(pageSize))

	start := time.Now()
	status, body, err := c.get(ctx, params)
	if err != nil {
		c.finish(callByNameSeason, start, params, outcomeOf(err), 0, err)
		return nil, err
	}
	if status == http.StatusNotFound || (isSuccess(status) && isStatusObject(body)) {
		c.finish(callByNameSeason, start, params, metrics.OutcomeNotFound, 0, nil)
		return []model.PlayerSeasonRecord{}, nil
	}
	recs, err := decodeArray(status, body)
	if err != nil {
		c.finish(callByNameSeason, start, params, outcomeOf(err), 0, err)
		return nil, err
	}
	c.finish(callByNameSeason, start, params, metrics.OutcomeOK, len(recs), nil)
	return recs, nil
}

// FetchSingleByNameAndSeason returns the first row for the player's season, or nil when there is none.
func (c *Client) FetchSingleByNameAndSeason(ctx context.Context, name string, season int) (*model.PlayerSeasonRecord, error) {
	recs, err := c.FetchByNameAndSeason(ctx, name, season, SeasonPageSize)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	rec := recs[0]
	return &rec, nil
}

// FetchAllByName walks the name search page by page until a short or empty page, or MaxPages.
func (c *Client) FetchAllByName(ctx context.Context, name string) ([]model.PlayerSeasonRecord, error) {
	all := make([]model.PlayerSeasonRecord, 0, AllPagesPageSize)
	for page := 1; page <= c.maxPages; page++ {
		recs, err := c.FetchByNamePaged(ctx, name, page, AllPagesPageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		all = append(all, recs...)
		if len(recs) < AllPagesPageSize {
			return all, nil
		}
	}
	c.log.Warn().Str("player_name", name).Int("max_pages", c.maxPages).Msg("stopped paging at max pages")
	return all, nil
}

// Ping checks that the upstream answers HTTP at all. Any status below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("pageNumber", "1")
	params.Set("pageSize", "1")

	start := time.Now()
	status, body, err := c.get(ctx, params)
	if err == nil && status >= http.StatusInternalServerError {
		err = &StatusError{StatusCode: status, Snippet: snippet(body)}
	}
	c.finish(callPing, start, params, outcomeOf(err), 0, err)
	return err
}

func (c *Client) get(ctx context.Context, params url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, &TransportError{URL: req.URL.String(), Err: fmt.Errorf("read body: %w", err)}
	}
	return resp.StatusCode, body, nil
}

func (c *Client) finish(call string, start time.Time, params url.Values, outcome string, n int, err error) {
	took := time.Since(start)
	c.metrics.RecordUpstreamCall(call, outcome, took)
	if err != nil {
		c.log.Warn().Err(err).Str("call", call).Str("query", params.Encode()).Dur("took", took).Str("outcome", outcome).Msg("upstream call failed")
		return
	}
	c.log.Debug().Str("call", call).Str("query", params.Encode()).Dur("took", took).Str("outcome", outcome).Int("records", n).Msg("upstream call")
}

func decodeArray(status int, body []byte) ([]model.PlayerSeasonRecord, error) {
	if !isSuccess(status) {
		return nil, &StatusError{StatusCode: status, Snippet: snippet(body)}
	}
	var recs []model.PlayerSeasonRecord
	if err := json.Unmarshal(body, &recs); err != nil {
		return nil, &DecodeError{Snippet: snippet(body), Err: err}
	}
	if recs == nil {
		recs = []model.PlayerSeasonRecord{}
	}
	return recs, nil
}

// isStatusObject detects the upstream's 200-with-error-object reply, e.g. {"status":404,"message":"..."}.
func isStatusObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return false
	}
	_, ok := obj["status"]
	return ok
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }

func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var (
		te *TransportError
		de *DecodeError
		se *StatusError
	)
	switch {
	case errors.As(err, &te):
		return metrics.OutcomeTransport
	case errors.As(err, &de):
		return metrics.OutcomeDecode
	case errors.As(err, &se):
		if se.NotFound() {
			return metrics.OutcomeNotFound
		}
		return metrics.OutcomeStatus
	default:
		return metrics.OutcomeTransport
	}
}
