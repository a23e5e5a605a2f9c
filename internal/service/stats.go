package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/nba-totals/internal/model"
	"github.com/maxviazov/nba-totals/internal/nbaapi"
)

type statsService struct {
	upstream Upstream
	ranges   RangeFetcher
	log      zerolog.Logger
}

func NewStatsService(upstream Upstream, ranges RangeFetcher, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	return &statsService{upstream: upstream, ranges: ranges, log: l}
}

func (s *statsService) Teams() []model.Team {
	out := make([]model.Team, len(model.Teams))
	copy(out, model.Teams)
	return out
}

func (s *statsService) TeamRoster(ctx context.Context, season int, team string) ([]model.PlayerSeasonRecord, error) {
	in := rosterInput{Season: season, Team: normalizeTeam(team)}
	if err := check(in); err != nil {
		s.log.Debug().Err(err).Int("season", season).Str("team", team).Msg("team roster: invalid input")
		return nil, err
	}
	start := time.Now()
	recs, err := s.upstream.FetchBySeasonAndTeam(ctx, in.Season, in.Team)
	if err != nil {
		s.log.Error().Err(err).Int("season", in.Season).Str("team", in.Team).Dur("took", time.Since(start)).Msg("team roster failed")
		return nil, err
	}
	return recs, nil
}

func (s *statsService) SearchPlayers(ctx context.Context, name string, page, pageSize int) (SearchPage, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = nbaapi.SearchPageSize
	}
	in := searchInput{Name: normalizeName(name), Page: page, PageSize: pageSize}
	if err := check(in); err != nil {
		s.log.Debug().Err(err).Str("player_name", name).Msg("search players: invalid input")
		return SearchPage{}, err
	}

	out := SearchPage{Name: in.Name, Page: in.Page, PageSize: in.PageSize}
	start := time.Now()
	recs, err := s.upstream.FetchByNamePaged(ctx, in.Name, in.Page, in.PageSize)
	switch {
	case nbaapi.IsNotFound(err):
		out.Records = []model.PlayerSeasonRecord{}
		out.NoMatch = true
		return out, nil
	case err != nil:
		s.log.Error().Err(err).Str("player_name", in.Name).Int("page", in.Page).Dur("took", time.Since(start)).Msg("search players failed")
		return SearchPage{}, err
	}
	out.Records = recs
	out.NoMatch = in.Page == 1 && len(recs) == 0
	return out, nil
}

func (s *statsService) AllSeasonsByName(ctx context.Context, name string) ([]model.PlayerSeasonRecord, error) {
	in := nameInput{Name: normalizeName(name)}
	if err := check(in); err != nil {
		s.log.Debug().Err(err).Msg("all seasons: invalid input")
		return nil, err
	}
	start := time.Now()
	recs, err := s.upstream.FetchAllByName(ctx, in.Name)
	if err != nil {
		s.log.Error().Err(err).Str("player_name", in.Name).Dur("took", time.Since(start)).Msg("all seasons failed")
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: no seasons for %q", ErrNotFound, in.Name)
	}
	return recs, nil
}

func (s *statsService) PlayerSeason(ctx context.Context, name string, season int) (model.PlayerSeasonRecord, error) {
	in := playerSeasonInput{Name: normalizeName(name), Season: season}
	if err := check(in); err != nil {
		s.log.Debug().Err(err).Msg("player season: invalid input")
		return model.PlayerSeasonRecord{}, err
	}
	return s.single(ctx, in.Name, in.Season)
}

func (s *statsService) single(ctx context.Context, name string, season int) (model.PlayerSeasonRecord, error) {
	start := time.Now()
	rec, err := s.upstream.FetchSingleByNameAndSeason(ctx, name, season)
	if err != nil {
		s.log.Error().Err(err).Str("player_name", name).Int("season", season).Dur("took", time.Since(start)).Msg("player season failed")
		return model.PlayerSeasonRecord{}, err
	}
	if rec == nil {
		return model.PlayerSeasonRecord{}, fmt.Errorf("%w: %q has no %d season", ErrNotFound, name, season)
	}
	return *rec, nil
}

func (s *statsService) SeasonRange(ctx context.Context, name string, from, to int) (model.SeasonRangeResult, error) {
	in := rangeInput{Name: normalizeName(name), From: from, To: to}
	err := check(in)
	if err == nil && in.To-in.From+1 > MaxRangeSeasons {
		err = NewInvalidInputError([]FieldError{{Field: "to", Message: fmt.Sprintf("range must span at most %d seasons", MaxRangeSeasons)}})
	}
	if err != nil {
		s.log.Debug().Err(err).Int("from", from).Int("to", to).Msg("season range: invalid input")
		return nil, err
	}
	// per-season failures surface as absent entries, never as an error
	return s.ranges.FetchRange(ctx, in.Name, in.From, in.To), nil
}

func (s *statsService) ComparePlayers(ctx context.Context, season int, left, right string) (Comparison, error) {
	in := compareInput{Season: season, Left: normalizeName(left), Right: normalizeName(right)}
	if err := check(in); err != nil {
		s.log.Debug().Err(err).Int("season", season).Msg("compare: invalid input")
		return Comparison{}, err
	}

	var l, r model.PlayerSeasonRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		l, err = s.single(gctx, in.Left, in.Season)
		return err
	})
	g.Go(func() (err error) {
		r, err = s.single(gctx, in.Right, in.Season)
		return err
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}
	return Comparison{Season: in.Season, Left: l, Right: r, Rows: model.Compare(l, r)}, nil
}
