package session_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/nba-totals/internal/metrics"
	"github.com/maxviazov/nba-totals/internal/model"
	"github.com/maxviazov/nba-totals/internal/nbaapi"
	"github.com/maxviazov/nba-totals/internal/rangefetch"
	"github.com/maxviazov/nba-totals/internal/service"
	"github.com/maxviazov/nba-totals/internal/session"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func ok(body string) *http.Response {
	return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: io.NopCloser(strings.NewReader(body))}
}

// newStack wires the real client, aggregator and service over rt.
func newStack(t *testing.T, rt http.RoundTripper, rec *metrics.Recorder) *session.Controller {
	t.Helper()
	log := zerolog.Nop()
	client := nbaapi.NewClient(nbaapi.Config{
		BaseURL:    "http://upstream.test",
		HTTPClient: &http.Client{Transport: rt},
		Logger:     log,
		Metrics:    rec,
	})
	svc := service.NewStatsService(client, rangefetch.New(client, log, rec), log)
	return session.NewController(svc, session.NewStore(log, rec), log)
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("request did not settle")
	}
}

func TestController_SlowOlderRangeDoesNotOverwriteNewer(t *testing.T) {
	release := make(chan struct{})
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		name := req.URL.Query().Get("playerName")
		season := req.URL.Query().Get("season")
		if name == "Slow Player" {
			<-release
			return ok(`[{"id":1,"playerName":"Slow Player","season":` + season + `}]`), nil
		}
		return ok(`[{"id":2,"playerName":"Fast Player","season":` + season + `}]`), nil
	})
	rec := metrics.NewRecorder()
	ctrl := newStack(t, rt, rec)
	ctx := context.Background()

	first := ctrl.LoadRange(ctx, "Slow Player", 2020, 2021)
	second := ctrl.LoadRange(ctx, "Fast Player", 2020, 2021)

	waitDone(t, second)
	st := ctrl.Store().State().Range
	assert.Equal(t, "Fast Player", st.Name)
	assert.False(t, st.Loading)
	require.NotNil(t, st.Result[2020])
	assert.Equal(t, 2, st.Result[2020].ID)

	close(release)
	waitDone(t, first)

	st = ctrl.Store().State().Range
	assert.Equal(t, "Fast Player", st.Name)
	assert.Equal(t, 2, st.Result[2020].ID)
	assert.Equal(t, 2, st.Result[2021].ID)

	expected := `
# HELP nba_totals_stale_results_dropped_total Results discarded because a newer request superseded them.
# TYPE nba_totals_stale_results_dropped_total counter
nba_totals_stale_results_dropped_total{slice="range"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "nba_totals_stale_results_dropped_total"))
}

func TestController_SearchNoMatchOnEmptyFirstPage(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) { return ok(`[]`), nil })
	ctrl := newStack(t, rt, nil)

	waitDone(t, ctrl.Search(context.Background(), "Nobody", 1, 6))
	st := ctrl.Store().State().Search
	assert.True(t, st.NoMatch)
	assert.NoError(t, st.Err)
	assert.False(t, st.Loading)
}

func TestController_RosterErrorLandsInState(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusBadGateway, Header: http.Header{}, Body: io.NopCloser(strings.NewReader("down"))}, nil
	})
	ctrl := newStack(t, rt, nil)

	waitDone(t, ctrl.LoadRoster(context.Background(), 2023, "LAL"))
	st := ctrl.Store().State().Roster
	se, isStatus := nbaapi.AsStatusError(st.Err)
	require.True(t, isStatus)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestController_CompareAndSubscribe(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		name := req.URL.Query().Get("playerName")
		return ok(`[{"id":1,"playerName":"` + name + `","points":100}]`), nil
	})
	ctrl := newStack(t, rt, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	snaps := ctrl.Store().Subscribe(ctx)
	initial := <-snaps
	assert.Zero(t, initial.Compare.Generation)

	waitDone(t, ctrl.Compare(ctx, 2015, "A Player", "B Player"))
	ctrl.Wait()

	var last session.State
	require.Eventually(t, func() bool {
		select {
		case last = <-snaps:
		default:
		}
		return last.Compare.Result != nil
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "A Player", last.Compare.Result.Left.PlayerName)
	assert.Equal(t, "B Player", last.Compare.Result.Right.PlayerName)

	cancel()
	require.Eventually(t, func() bool {
		for {
			select {
			case _, open := <-snaps:
				if !open {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 10*time.Millisecond)
}

func TestStore_DispatchReportsStale(t *testing.T) {
	store := session.NewStore(zerolog.Nop(), nil)
	g1 := store.NextGeneration(session.SliceRoster)
	g2 := store.NextGeneration(session.SliceRoster)
	require.Greater(t, g2, g1)

	assert.True(t, store.Dispatch(session.RosterRequested{Gen: g1}))
	assert.True(t, store.Dispatch(session.RosterRequested{Gen: g2}))
	assert.False(t, store.Dispatch(session.RosterLoaded{Gen: g1, Records: []model.PlayerSeasonRecord{{ID: 1}}}))
	assert.True(t, store.Dispatch(session.RosterLoaded{Gen: g2}))
	assert.Empty(t, store.State().Roster.Records)
}
