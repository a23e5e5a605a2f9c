package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maxviazov/nba-totals/internal/nbaapi"
	"github.com/maxviazov/nba-totals/internal/server"
	"github.com/maxviazov/nba-totals/internal/service"
)

func newTeamsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List team codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.renderTeams(cmd.OutOrStdout())
		},
	}
}

func newRosterCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "roster SEASON TEAM",
		Short:   "Season totals for every player on a team",
		Example: "  nbatotals roster 2023-24 BOS",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := service.ParseSeason(args[0])
			if err != nil {
				return err
			}
			if err := e.await(cmd.Context(), e.ctrl.LoadRoster(cmd.Context(), season, args[1])); err != nil {
				return err
			}
			v := e.ctrl.Store().State().Roster
			if v.Err != nil {
				return v.Err
			}
			return e.renderRecords(cmd.OutOrStdout(), v.Records)
		},
	}
}

func newSearchCommand(e *env) *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "search NAME",
		Short: "Find a player's seasons by name, one page at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.await(cmd.Context(), e.ctrl.Search(cmd.Context(), args[0], page, pageSize)); err != nil {
				return err
			}
			v := e.ctrl.Store().State().Search
			if v.Err != nil {
				return v.Err
			}
			if v.NoMatch {
				fmt.Fprintf(cmd.OutOrStdout(), "no player matches %q\n", args[0])
				return nil
			}
			return e.renderRecords(cmd.OutOrStdout(), v.Records)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", nbaapi.SearchPageSize, "rows per page")
	return cmd
}

func newRangeCommand(e *env) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:     "range NAME",
		Short:   "One player's totals for every season in a range",
		Example: "  nbatotals range \"LeBron James\" --from 2021 --to 2023",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromYear, err := service.ParseSeason(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			toYear, err := service.ParseSeason(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			if err := e.await(cmd.Context(), e.ctrl.LoadRange(cmd.Context(), args[0], fromYear, toYear)); err != nil {
				return err
			}
			v := e.ctrl.Store().State().Range
			if v.Err != nil {
				return v.Err
			}
			return e.renderRange(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first season (YYYY or YYYY-YY)")
	cmd.Flags().StringVar(&to, "to", "", "last season (YYYY or YYYY-YY)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newCompareCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "compare SEASON LEFT RIGHT",
		Short:   "Two players side by side for one season",
		Example: "  nbatotals compare 2016 \"Stephen Curry\" \"Kevin Durant\"",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := service.ParseSeason(args[0])
			if err != nil {
				return err
			}
			if err := e.await(cmd.Context(), e.ctrl.Compare(cmd.Context(), season, args[1], args[2])); err != nil {
				return err
			}
			v := e.ctrl.Store().State().Compare
			if v.Err != nil {
				return v.Err
			}
			return e.renderComparison(cmd.OutOrStdout(), v.Result)
		},
	}
}

func newServeCommand(e *env) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				e.cfg.App.Port = port
			}
			// the server logs for operators, so it gets the configured logger rather than the quiet one
			log, err := loggerFor(e)
			if err != nil {
				return err
			}
			log.Info().Str("addr", ":"+strconv.Itoa(e.cfg.App.Port)).Msg("serving")
			return server.New(e.cfg, log).Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides app.port)")
	return cmd
}
