// Package rangefetch resolves one player's totals across an inclusive range of seasons.
// It fans out one upstream query per season and joins them all before returning.
package rangefetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/nba-totals/internal/metrics"
	"github.com/maxviazov/nba-totals/internal/model"
	"github.com/maxviazov/nba-totals/internal/nbaapi"
)

// SeasonFetcher is the single upstream call the aggregator needs.
type SeasonFetcher interface {
	FetchByNameAndSeason(ctx context.Context, name string, season, pageSize int) ([]model.PlayerSeasonRecord, error)
}

// Aggregator runs range fetches. It is stateless and safe for concurrent use.
type Aggregator struct {
	fetcher SeasonFetcher
	log     zerolog.Logger
	metrics *metrics.Recorder
}

func New(fetcher SeasonFetcher, logger zerolog.Logger, rec *metrics.Recorder) *Aggregator {
	l := logger.With().Str("module", "rangefetch").Logger()
	return &Aggregator{fetcher: fetcher, log: l, metrics: rec}
}

// FetchRange returns a result keyed by every season in [from, to].
//
// Each season is fetched on its own goroutine. A season whose fetch fails for any reason,
// or returns no rows, maps to nil; errors never reach the caller. When several rows come back
// for a season (a traded player), only the first is kept. The map is assembled only after every
// goroutine has finished. from > to yields an empty result.
func (a *Aggregator) FetchRange(ctx context.Context, name string, from, to int) model.SeasonRangeResult {
	if from > to {
		return model.SeasonRangeResult{}
	}
	start := time.Now()
	n := to - from + 1

	// one slot per season, each written by exactly one goroutine
	outcomes := make([]*model.PlayerSeasonRecord, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		season := from + i
		g.Go(func() error {
			recs, err := a.fetcher.FetchByNameAndSeason(ctx, name, season, nbaapi.SeasonPageSize)
			if err != nil {
				a.log.Debug().Err(err).Str("player_name", name).Int("season", season).Msg("season treated as absent")
				return nil
			}
			if len(recs) > 0 {
				rec := recs[0]
				outcomes[i] = &rec
			}
			return nil
		})
	}
	_ = g.Wait()

	result := make(model.SeasonRangeResult, n)
	for i, rec := range outcomes {
		result[from+i] = rec
	}

	present := result.Present()
	a.metrics.RecordRange(present, n-present)
	a.log.Info().
		Str("player_name", name).
		Int("from", from).
		Int("to", to).
		Int("present", present).
		Dur("took", time.Since(start)).
		Msg("range fetched")
	return result
}
