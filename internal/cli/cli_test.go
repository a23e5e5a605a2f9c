package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("season") == "2022":
			w.WriteHeader(http.StatusNotFound)
		case q.Get("team") == "BOS":
			_, _ = w.Write([]byte(`[{"id":1,"playerName":"Jaylen Brown","team":"BOS","season":2023,"points":1900,"fieldPercent":0.499}]`))
		case q.Get("playerName") == "Nobody":
			_, _ = w.Write([]byte(`[]`))
		default:
			name, season := q.Get("playerName"), q.Get("season")
			_, _ = w.Write([]byte(`[{"id":` + season + `,"playerName":"` + name + `","team":"LAL","season":` + season + `,"points":1500}]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTeamsJSON(t *testing.T) {
	out, err := run(t, "teams", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"code": "BOS"`)
}

func TestRosterTable(t *testing.T) {
	srv := upstream(t)
	out, err := run(t, "--base-url", srv.URL, "roster", "2023-24", "bos")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAYER")
	assert.Contains(t, out, "Jaylen Brown")
	assert.Contains(t, out, "49.9")
}

func TestRangeShowsAbsentSeason(t *testing.T) {
	srv := upstream(t)
	out, err := run(t, "--base-url", srv.URL, "range", "LeBron James", "--from", "2021", "--to", "2023")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "2021"))
	assert.True(t, strings.HasPrefix(lines[2], "2022"))
	assert.Contains(t, lines[2], "-")
	assert.Contains(t, lines[3], "LAL")
}

func TestSearchNoMatch(t *testing.T) {
	srv := upstream(t)
	out, err := run(t, "--base-url", srv.URL, "search", "Nobody")
	require.NoError(t, err)
	assert.Contains(t, out, `no player matches "Nobody"`)
}

func TestCompareJSON(t *testing.T) {
	srv := upstream(t)
	out, err := run(t, "--base-url", srv.URL, "--json", "compare", "2016", "A Player", "B Player")
	require.NoError(t, err)
	assert.Contains(t, out, `"season": 2016`)
	assert.Contains(t, out, `"stat": "points"`)
	assert.Contains(t, out, `"leader": "tie"`)
}

func TestInvalidInputIsReported(t *testing.T) {
	srv := upstream(t)
	_, err := run(t, "--base-url", srv.URL, "range", "x", "--from", "2023", "--to", "2021")
	assert.Error(t, err)

	_, err = run(t, "roster", "twenty", "BOS")
	assert.Error(t, err)
}
