package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/maxviazov/nba-totals/internal/service"
)

// Controller turns user intents into requests against the service and feeds results to a Store.
// Every call returns immediately; the returned channel closes once the result has been
// applied or dropped as stale.
type Controller struct {
	svc   service.StatsService
	store *Store
	log   zerolog.Logger
	wg    sync.WaitGroup
}

func NewController(svc service.StatsService, store *Store, logger zerolog.Logger) *Controller {
	l := logger.With().Str("module", "session").Str("component", "controller").Logger()
	return &Controller{svc: svc, store: store, log: l}
}

func (c *Controller) Store() *Store { return c.store }

// Wait blocks until every request issued so far has settled.
func (c *Controller) Wait() { c.wg.Wait() }

func (c *Controller) LoadRoster(ctx context.Context, season int, team string) <-chan struct{} {
	gen := c.store.NextGeneration(SliceRoster)
	c.store.Dispatch(RosterRequested{Gen: gen, Season: season, Team: team})
	return c.run(func() Msg {
		recs, err := c.svc.TeamRoster(ctx, season, team)
		return RosterLoaded{Gen: gen, Records: recs, Err: err}
	})
}

func (c *Controller) Search(ctx context.Context, name string, page, pageSize int) <-chan struct{} {
	gen := c.store.NextGeneration(SliceSearch)
	c.store.Dispatch(SearchRequested{Gen: gen, Name: name, Page: page, PageSize: pageSize})
	return c.run(func() Msg {
		p, err := c.svc.SearchPlayers(ctx, name, page, pageSize)
		return SearchLoaded{Gen: gen, Page: p, Err: err}
	})
}

func (c *Controller) LoadRange(ctx context.Context, name string, from, to int) <-chan struct{} {
	gen := c.store.NextGeneration(SliceRange)
	c.store.Dispatch(RangeRequested{Gen: gen, Name: name, From: from, To: to})
	return c.run(func() Msg {
		res, err := c.svc.SeasonRange(ctx, name, from, to)
		return RangeLoaded{Gen: gen, Result: res, Err: err}
	})
}

func (c *Controller) Compare(ctx context.Context, season int, left, right string) <-chan struct{} {
	gen := c.store.NextGeneration(SliceCompare)
	c.store.Dispatch(CompareRequested{Gen: gen, Season: season, Left: left, Right: right})
	return c.run(func() Msg {
		cmp, err := c.svc.ComparePlayers(ctx, season, left, right)
		if err != nil {
			return CompareLoaded{Gen: gen, Err: err}
		}
		return CompareLoaded{Gen: gen, Result: &cmp}
	})
}

func (c *Controller) run(fetch func() Msg) <-chan struct{} {
	done := make(chan struct{})
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		msg := fetch()
		if !c.store.Dispatch(msg) {
			sl, gen, _ := msg.meta()
			c.log.Debug().Str("slice", string(sl)).Uint64("generation", gen).Msg("result superseded")
		}
	}()
	return done
}
