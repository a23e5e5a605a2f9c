package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/nba-totals/internal/service"
	"github.com/maxviazov/nba-totals/pkg/response"
)

type TeamHandler struct {
	svc service.StatsService
}

func NewTeamHandler(svc service.StatsService) *TeamHandler { return &TeamHandler{svc: svc} }

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/teams")
	{
		g.GET("", h.list)
		g.GET("/:team/seasons/:season/players", h.roster)
	}
}

func (h *TeamHandler) list(c *gin.Context) {
	response.WriteData(c, http.StatusOK, h.svc.Teams())
}

func (h *TeamHandler) roster(c *gin.Context) {
	season, err := service.ParseSeason(c.Param("season"))
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "season", Message: "must be YYYY or YYYY-YY"}}))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), serviceTimeout)
	defer cancel()

	recs, err := h.svc.TeamRoster(ctx, season, c.Param("team"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, recs)
}
