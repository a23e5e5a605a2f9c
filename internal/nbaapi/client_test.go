package nbaapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/nba-totals/internal/metrics"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// recordingTransport answers every request with the same response and keeps the queries it saw.
type recordingTransport struct {
	mu      sync.Mutex
	status  int
	body    string
	queries []url.Values
	paths   []string
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	r.queries = append(r.queries, req.URL.Query())
	r.paths = append(r.paths, req.URL.Path)
	r.mu.Unlock()
	return jsonResponse(r.status, r.body), nil
}

func newTestClient(rt http.RoundTripper, rec *metrics.Recorder) *Client {
	return NewClient(Config{
		BaseURL:    "http://upstream.test",
		HTTPClient: &http.Client{Transport: rt},
		Logger:     zerolog.Nop(),
		Metrics:    rec,
	})
}

const rosterBody = `[
	{"id": 101, "playerName": "Anthony Davis", "position": "C", "age": 30, "games": 76, "points": 1876,
	 "fieldPercent": 0.556, "team": "LAL", "season": 2024, "playerId": "davisan02", "someNewField": "ignored"},
	{"id": 102, "playerName": "LeBron James", "team": "LAL", "season": 2024}
]`

func TestFetchBySeasonAndTeam_SendsRosterQueryAndDecodes(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: rosterBody}
	c := newTestClient(rt, nil)

	recs, err := c.FetchBySeasonAndTeam(context.Background(), 2024, "LAL")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	require.Len(t, rt.queries, 1)
	q := rt.queries[0]
	assert.Equal(t, queryPath, rt.paths[0])
	assert.Equal(t, "2024", q.Get("season"))
	assert.Equal(t, "LAL", q.Get("team"))
	assert.Equal(t, "PlayerName", q.Get("sortBy"))
	assert.Equal(t, "true", q.Get("ascending"))
	assert.Equal(t, "1", q.Get("pageNumber"))
	assert.Equal(t, "35", q.Get("pageSize"))

	ad := recs[0]
	assert.Equal(t, 101, ad.ID)
	assert.Equal(t, "Anthony Davis", ad.PlayerName)
	require.NotNil(t, ad.Points)
	assert.Equal(t, 1876, *ad.Points)
	require.NotNil(t, ad.FieldPercent)
	assert.InDelta(t, 0.556, *ad.FieldPercent, 1e-9)

	partial := recs[1]
	assert.Equal(t, 102, partial.ID)
	assert.Equal(t, "LeBron James", partial.PlayerName)
	assert.Nil(t, partial.Points, "absent fields stay absent")
	assert.Nil(t, partial.Games)
}

func TestFetchBySeasonAndTeam_EmptyArray(t *testing.T) {
	c := newTestClient(&recordingTransport{status: http.StatusOK, body: `[]`}, nil)
	recs, err := c.FetchBySeasonAndTeam(context.Background(), 2024, "XXX")
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestFetchBySeasonAndTeam_ErrorTaxonomy(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset by peer")
		})
		_, err := newTestClient(rt, nil).FetchBySeasonAndTeam(context.Background(), 2024, "LAL")
		te, ok := AsTransportError(err)
		require.True(t, ok, "got %v", err)
		assert.False(t, te.Timeout())
	})
	t.Run("decode", func(t *testing.T) {
		_, err := newTestClient(&recordingTransport{status: http.StatusOK, body: `{bad json`}, nil).
			FetchBySeasonAndTeam(context.Background(), 2024, "LAL")
		de, ok := AsDecodeError(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, "{bad json", de.Snippet)
	})
	t.Run("object instead of array", func(t *testing.T) {
		_, err := newTestClient(&recordingTransport{status: http.StatusOK, body: `{"message":"nope"}`}, nil).
			FetchBySeasonAndTeam(context.Background(), 2024, "LAL")
		_, ok := AsDecodeError(err)
		assert.True(t, ok, "got %v", err)
	})
	t.Run("status", func(t *testing.T) {
		_, err := newTestClient(&recordingTransport{status: http.StatusBadGateway, body: `boom`}, nil).
			FetchBySeasonAndTeam(context.Background(), 2024, "LAL")
		se, ok := AsStatusError(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, http.StatusBadGateway, se.StatusCode)
		assert.False(t, IsNotFound(err))
	})
	t.Run("404 is an error for roster calls", func(t *testing.T) {
		_, err := newTestClient(&recordingTransport{status: http.StatusNotFound, body: `{"status":404}`}, nil).
			FetchBySeasonAndTeam(context.Background(), 2024, "LAL")
		assert.True(t, IsNotFound(err))
	})
}

func TestFetchByNamePaged_SendsDistinctPageParameters(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: `[]`}
	c := newTestClient(rt, nil)

	_, err := c.FetchByNamePaged(context.Background(), "James", 1, 6)
	require.NoError(t, err)
	_, err = c.FetchByNamePaged(context.Background(), "James", 2, 6)
	require.NoError(t, err)

	require.Len(t, rt.queries, 2)
	first, second := rt.queries[0], rt.queries[1]
	assert.Equal(t, "1", first.Get("pageNumber"))
	assert.Equal(t, "2", second.Get("pageNumber"))
	assert.Equal(t, "6", first.Get("pageSize"))
	assert.Equal(t, "6", second.Get("pageSize"))
	assert.Equal(t, "James", second.Get("playerName"))
	assert.Equal(t, "PlayerName", second.Get("sortBy"))
	assert.Equal(t, "true", second.Get("ascending"))
}

func TestFetchByNamePaged_DefaultsAndValidation(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: `[]`}
	c := newTestClient(rt, nil)

	_, err := c.FetchByNamePaged(context.Background(), "James", 0, 0)
	require.NoError(t, err)
	require.Len(t, rt.queries, 1)
	assert.Equal(t, "1", rt.queries[0].Get("pageNumber"))
	assert.Equal(t, "6", rt.queries[0].Get("pageSize"))

	_, err = c.FetchByNamePaged(context.Background(), "James", -1, 6)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	_, err = c.FetchByNamePaged(context.Background(), "James", 1, -3)
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Len(t, rt.queries, 1, "invalid queries never reach the network")
}

func TestFetchByNameAndSeason_NotFoundConventions(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"http 404", http.StatusNotFound, `Not Found`},
		{"200 with status object", http.StatusOK, `{"status": 404, "message": "No data found"}`},
		{"200 with status object and whitespace", http.StatusOK, "  \n{\"status\":\"NotFound\"}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := metrics.NewRecorder()
			c := newTestClient(&recordingTransport{status: tc.status, body: tc.body}, rec)
			recs, err := c.FetchByNameAndSeason(context.Background(), "LeBron James", 2022, 0)
			require.NoError(t, err)
			assert.NotNil(t, recs)
			assert.Empty(t, recs)
			expected := `
# HELP nba_totals_upstream_requests_total Upstream requests by call shape and outcome.
# TYPE nba_totals_upstream_requests_total counter
nba_totals_upstream_requests_total{call="by_name_season",outcome="not_found"} 1
`
			assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "nba_totals_upstream_requests_total"))
		})
	}
}

func TestFetchByNameAndSeason_QueryAndHardErrors(t *testing.T) {
	rt := &recordingTransport{status: http.StatusOK, body: `[{"id":1,"playerName":"LeBron James","team":"LAL","season":2023}]`}
	recs, err := newTestClient(rt, nil).FetchByNameAndSeason(context.Background(), "LeBron James", 2023, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	q := rt.queries[0]
	assert.Equal(t, "LeBron James", q.Get("playerName"))
	assert.Equal(t, "2023", q.Get("season"))
	assert.Equal(t, "30", q.Get("pageSize"))
	assert.Empty(t, q.Get("pageNumber"))

	_, err = newTestClient(&recordingTransport{status: http.StatusInternalServerError, body: `oops`}, nil).
		FetchByNameAndSeason(context.Background(), "LeBron James", 2023, 0)
	_, ok := AsStatusError(err)
	assert.True(t, ok, "got %v", err)

	_, err = newTestClient(&recordingTransport{status: http.StatusOK, body: `{"message":"no status key"}`}, nil).
		FetchByNameAndSeason(context.Background(), "LeBron James", 2023, 0)
	_, ok = AsDecodeError(err)
	assert.True(t, ok, "got %v", err)
}

func TestFetchSingleByNameAndSeason_TakesFirstRow(t *testing.T) {
	body := `[{"id":7,"playerName":"Traded Guy","team":"TOT"},{"id":8,"playerName":"Traded Guy","team":"BOS"}]`
	c := newTestClient(&recordingTransport{status: http.StatusOK, body: body}, nil)
	rec, err := c.FetchSingleByNameAndSeason(context.Background(), "Traded Guy", 2020)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 7, rec.ID)

	c = newTestClient(&recordingTransport{status: http.StatusNotFound}, nil)
	rec, err = c.FetchSingleByNameAndSeason(context.Background(), "Nobody", 2020)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFetchAllByName_WalksPagesUntilShortPage(t *testing.T) {
	var pages []string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		page := req.URL.Query().Get("pageNumber")
		pages = append(pages, page)
		if page == "1" {
			var b strings.Builder
			b.WriteString("[")
			for i := 0; i < AllPagesPageSize; i++ {
				if i > 0 {
					b.WriteString(",")
				}
				b.WriteString(`{"id":1,"playerName":"James"}`)
			}
			b.WriteString("]")
			return jsonResponse(http.StatusOK, b.String()), nil
		}
		return jsonResponse(http.StatusOK, `[{"id":2,"playerName":"James"}]`), nil
	})
	recs, err := newTestClient(rt, nil).FetchAllByName(context.Background(), "James")
	require.NoError(t, err)
	assert.Len(t, recs, AllPagesPageSize+1)
	assert.Equal(t, []string{"1", "2"}, pages)
}

func TestFetchAllByName_StopsAtMaxPages(t *testing.T) {
	full := "[" + strings.TrimSuffix(strings.Repeat(`{"id":1,"playerName":"X"},`, AllPagesPageSize), ",") + "]"
	calls := 0
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, full), nil
	})
	c := NewClient(Config{BaseURL: "http://upstream.test", HTTPClient: &http.Client{Transport: rt}, MaxPages: 2, Logger: zerolog.Nop()})
	recs, err := c.FetchAllByName(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, recs, 2*AllPagesPageSize)
}

func TestFetchAllByName_PropagatesErrors(t *testing.T) {
	c := newTestClient(&recordingTransport{status: http.StatusServiceUnavailable}, nil)
	_, err := c.FetchAllByName(context.Background(), "X")
	_, ok := AsStatusError(err)
	assert.True(t, ok, "got %v", err)
}

func TestPing(t *testing.T) {
	assert.NoError(t, newTestClient(&recordingTransport{status: http.StatusBadRequest}, nil).Ping(context.Background()))
	assert.Error(t, newTestClient(&recordingTransport{status: http.StatusBadGateway}, nil).Ping(context.Background()))
}

func TestClientAgainstHTTPTestServer_TimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond, Logger: zerolog.Nop()})
	_, err := c.FetchByNameAndSeason(context.Background(), "Slow", 2020, 0)
	te, ok := AsTransportError(err)
	require.True(t, ok, "got %v", err)
	assert.True(t, te.Timeout())
}

func TestClientSendsHeaders(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + queryPath, UserAgent: "tests/1.0", Logger: zerolog.Nop()})
	_, err := c.FetchByNamePaged(context.Background(), "x", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "tests/1.0", ua)
	assert.Equal(t, "application/json", accept)
}
