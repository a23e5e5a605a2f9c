package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/nba-totals/internal/service"
	"github.com/maxviazov/nba-totals/pkg/response"
)

// serviceTimeout bounds one request end to end; a full range fans out to many upstream calls.
const serviceTimeout = 30 * time.Second

type PlayerHandler struct {
	svc service.StatsService
}

func NewPlayerHandler(svc service.StatsService) *PlayerHandler { return &PlayerHandler{svc: svc} }

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.GET("", h.search)
		g.GET("/all", h.allSeasons)
		g.GET("/range", h.seasonRange)
		g.GET("/seasons/:season", h.season)
	}
	r.GET("/compare", h.compare)
}

func (h *PlayerHandler) search(c *gin.Context) {
	var ferrs []service.FieldError
	page := intQuery(c, "page", &ferrs)
	pageSize := intQuery(c, "page_size", &ferrs)
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	res, err := h.svc.SearchPlayers(ctx, c.Query("name"), page, pageSize)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) allSeasons(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	recs, err := h.svc.AllSeasonsByName(ctx, c.Query("name"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, recs)
}

func (h *PlayerHandler) season(c *gin.Context) {
	season, err := service.ParseSeason(c.Param("season"))
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "season", Message: err.Error()}}))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	rec, err := h.svc.PlayerSeason(ctx, c.Query("name"), season)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rec)
}

// rangeEntry lists seasons in order with an explicit null record for absent ones.
type rangeEntry struct {
	Season int `json:"season"`
	Record any `json:"record"`
}

type rangeResponse struct {
	Name    string       `json:"name"`
	From    int          `json:"from"`
	To      int          `json:"to"`
	Present int          `json:"present"`
	Seasons []rangeEntry `json:"seasons"`
}

func (h *PlayerHandler) seasonRange(c *gin.Context) {
	var ferrs []service.FieldError
	from := seasonQuery(c, "from", &ferrs)
	to := seasonQuery(c, "to", &ferrs)
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	res, err := h.svc.SeasonRange(ctx, c.Query("name"), from, to)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	out := rangeResponse{Name: strings.TrimSpace(c.Query("name")), From: from, To: to, Present: res.Present()}
	for _, y := range res.Years() {
		entry := rangeEntry{Season: y}
		if rec := res[y]; rec != nil {
			entry.Record = rec
		}
		out.Seasons = append(out.Seasons, entry)
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *PlayerHandler) compare(c *gin.Context) {
	var ferrs []service.FieldError
	season := seasonQuery(c, "season", &ferrs)
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	cmp, err := h.svc.ComparePlayers(ctx, season, c.Query("left"), c.Query("right"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, cmp)
}

// intQuery parses an optional integer query parameter; absent means 0 and lets the service default it.
func intQuery(c *gin.Context, key string, ferrs *[]service.FieldError) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*ferrs = append(*ferrs, service.FieldError{Field: key, Message: "must be a valid integer"})
	}
	return n
}

func seasonQuery(c *gin.Context, key string, ferrs *[]service.FieldError) int {
	raw := c.Query(key)
	if strings.TrimSpace(raw) == "" {
		*ferrs = append(*ferrs, service.FieldError{Field: key, Message: "is required"})
		return 0
	}
	season, err := service.ParseSeason(raw)
	if err != nil {
		*ferrs = append(*ferrs, service.FieldError{Field: key, Message: "must be YYYY or YYYY-YY"})
	}
	return season
}
