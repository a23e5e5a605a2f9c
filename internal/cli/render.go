package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"github.com/maxviazov/nba-totals/internal/model"
	"github.com/maxviazov/nba-totals/internal/service"
	"github.com/maxviazov/nba-totals/internal/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (e *env) writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (e *env) renderTeams(w io.Writer) error {
	if e.opts.asJSON {
		return e.writeJSON(w, model.Teams)
	}
	tw := table(w)
	fmt.Fprintln(tw, "CODE\tTEAM")
	for _, t := range model.Teams {
		fmt.Fprintf(tw, "%s\t%s\n", t.Code, t.Name)
	}
	return tw.Flush()
}

func (e *env) renderRecords(w io.Writer, recs []model.PlayerSeasonRecord) error {
	if e.opts.asJSON {
		if recs == nil {
			recs = []model.PlayerSeasonRecord{}
		}
		return e.writeJSON(w, recs)
	}
	tw := table(w)
	fmt.Fprintln(tw, "PLAYER\tSEASON\tTEAM\tPOS\tAGE\tG\tPTS\tTRB\tAST\tFG%\t3P%")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.PlayerName, intCell(r.Season), strCell(r.Team), strCell(r.Position), intCell(r.Age),
			intCell(r.Games), intCell(r.Points), intCell(r.TotalRb), intCell(r.Assists),
			pctCell(r.FieldPercent), pctCell(r.ThreePercent))
	}
	return tw.Flush()
}

type rangeJSON struct {
	Name    string                      `json:"name"`
	From    int                         `json:"from"`
	To      int                         `json:"to"`
	Seasons []*model.PlayerSeasonRecord `json:"seasons"`
}

func (e *env) renderRange(w io.Writer, v session.RangeView) error {
	if e.opts.asJSON {
		out := rangeJSON{Name: v.Name, From: v.From, To: v.To}
		for _, y := range v.Result.Years() {
			out.Seasons = append(out.Seasons, v.Result[y])
		}
		return e.writeJSON(w, out)
	}
	tw := table(w)
	fmt.Fprintln(tw, "SEASON\tTEAM\tG\tPTS\tTRB\tAST\tFG%")
	for _, y := range v.Result.Years() {
		r := v.Result[y]
		if r == nil {
			fmt.Fprintf(tw, "%d\t-\t-\t-\t-\t-\t-\n", y)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", y, strCell(r.Team), intCell(r.Games),
			intCell(r.Points), intCell(r.TotalRb), intCell(r.Assists), pctCell(r.FieldPercent))
	}
	return tw.Flush()
}

func (e *env) renderComparison(w io.Writer, cmp *service.Comparison) error {
	if e.opts.asJSON {
		return e.writeJSON(w, cmp)
	}
	tw := table(w)
	fmt.Fprintf(tw, "STAT\t%s\t%s\tLEADER\n", cmp.Left.PlayerName, cmp.Right.PlayerName)
	for _, row := range cmp.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Stat, floatCell(row.Left), floatCell(row.Right), leaderCell(row.Leader, cmp))
	}
	return tw.Flush()
}

func leaderCell(s model.Side, cmp *service.Comparison) string {
	switch s {
	case model.SideLeft:
		return cmp.Left.PlayerName
	case model.SideRight:
		return cmp.Right.PlayerName
	case model.SideTie:
		return "tie"
	}
	return ""
}

func intCell(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func strCell(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func pctCell(v *float64) string {
	p := model.Percent(v)
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', 1, 64)
}

func floatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
