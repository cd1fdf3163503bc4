package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/statpadgame/statpad-data/internal/dataset"
	"github.com/statpadgame/statpad-data/internal/provider"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testFeed serves the category frames Build fetches. The defense frame is
// intentionally missing to exercise 404 tolerance.
func testFeed(t *testing.T) *httptest.Server {
	t.Helper()
	frames := map[string]string{
		"/passing_2020.csv": "player,season,team,position,passing_yards,passing_tds,interceptions\n" +
			"Quin Passer,2020,KC,QB,4000,30,10\n",
		"/rushing_2020.csv": "player,season,team,position,rushing_yards,rushing_tds\n" +
			"Quin Passer,2020,KC,QB,200,2\n" +
			"Rex Rusher,2020,OAK,RB,1000,8\n",
		"/receiving_2020.csv": "player,season,team,position,receptions,receiving_yards,receiving_tds\n" +
			"Rex Rusher,2020,OAK,RB,50,400,2\n" +
			"Wes Receiver*+,2020,SF,WR,90,1200,8\n",
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := frames[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func TestBuild(t *testing.T) {
	srv := testFeed(t)
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "stats.csv")
	client := provider.NewClient(srv.URL, 60000, nil)

	result := Build(context.Background(), client, 2020, 2020, out, discardLogger())
	if len(result.Errors) != 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}
	if result.Seasons != 1 || result.Rows != 3 {
		t.Fatalf("summary = %s, want 1 season / 3 rows", result.Summary())
	}

	table, err := dataset.LoadCSV(out)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}

	// Passing and rushing frames merged into one QB row.
	qb := lookupOne(t, table, "Quin Passer", 2020)
	if qb.Stats["passing_yards"] != 4000 || qb.Stats["rushing_yards"] != 200 {
		t.Errorf("QB stats not merged: %v", qb.Stats)
	}
	// 4000*0.04 + 30*4 - 10*2 + 200*0.1 + 2*6 = 292
	if qb.Stats["fantasy_points"] != 292 {
		t.Errorf("QB fantasy_points = %v, want 292", qb.Stats["fantasy_points"])
	}
	if qb.Stats["fantasy_points_ppr"] != 292 {
		t.Errorf("QB fantasy_points_ppr = %v, want 292 (no receptions)", qb.Stats["fantasy_points_ppr"])
	}

	// Historical team abbreviation normalized to the current franchise.
	rb := lookupOne(t, table, "Rex Rusher", 2020)
	if rb.Team != "LV" {
		t.Errorf("RB team = %q, want LV", rb.Team)
	}
	// 1000*0.1 + 8*6 + 400*0.1 + 2*6 = 200; PPR adds 50 receptions.
	if rb.Stats["fantasy_points"] != 200 || rb.Stats["fantasy_points_ppr"] != 250 {
		t.Errorf("RB fantasy = %v / %v, want 200 / 250",
			rb.Stats["fantasy_points"], rb.Stats["fantasy_points_ppr"])
	}

	// Award markers stripped from the source name.
	wr := lookupOne(t, table, "Wes Receiver", 2020)
	if wr.Stats["receiving_yards"] != 1200 {
		t.Errorf("WR stats: %v", wr.Stats)
	}
}

func TestBuild_DefenseInterceptionsKeptSeparate(t *testing.T) {
	frames := map[string]string{
		"/passing_2021.csv": "player,season,team,position,passing_yards,passing_tds,interceptions\n" +
			"Quin Passer,2021,KC,QB,4000,30,10\n",
		"/defense_2021.csv": "player,season,team,position,interceptions,tackles_total\n" +
			"Cory Corner,2021,SF,CB,5,60\n",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := frames[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "stats.csv")
	client := provider.NewClient(srv.URL, 60000, nil)

	result := Build(context.Background(), client, 2021, 2021, out, discardLogger())
	if len(result.Errors) != 0 {
		t.Fatalf("build errors: %v", result.Errors)
	}

	table, err := dataset.LoadCSV(out)
	if err != nil {
		t.Fatalf("load output: %v", err)
	}

	// Thrown interceptions stay in the passing column; the QB must not show
	// up in the defensive pool.
	qb := lookupOne(t, table, "Quin Passer", 2021)
	if qb.Stats["interceptions"] != 10 {
		t.Errorf("QB interceptions = %v, want 10", qb.Stats["interceptions"])
	}
	if _, ok := qb.Stats["interceptions_def"]; ok {
		t.Errorf("QB carries interceptions_def: %v", qb.Stats)
	}
	// 4000*0.04 + 30*4 - 10*2 = 260
	if qb.Stats["fantasy_points"] != 260 {
		t.Errorf("QB fantasy_points = %v, want 260", qb.Stats["fantasy_points"])
	}

	// Caught interceptions land in the defensive column only.
	cb := lookupOne(t, table, "Cory Corner", 2021)
	if cb.Stats["interceptions_def"] != 5 {
		t.Errorf("CB interceptions_def = %v, want 5", cb.Stats["interceptions_def"])
	}
	if _, ok := cb.Stats["interceptions"]; ok {
		t.Errorf("CB carries thrown interceptions: %v", cb.Stats)
	}
}

func TestBuild_AllFramesMissing(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "stats.csv")
	client := provider.NewClient(srv.URL, 60000, nil)

	result := Build(context.Background(), client, 2020, 2020, out, discardLogger())
	if result.Rows != 0 {
		t.Errorf("rows = %d, want 0", result.Rows)
	}
	if len(result.Errors) == 0 {
		t.Error("an empty build should report an error")
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("no output file should be written for an empty build")
	}
}

func TestCleanPlayerName(t *testing.T) {
	cases := map[string]string{
		"Wes Receiver*+": "Wes Receiver",
		"Plain Name":     "Plain Name",
		"  Padded  ":     "Padded",
		"Starred*":       "Starred",
	}
	for in, want := range cases {
		if got := cleanPlayerName(in); got != want {
			t.Errorf("cleanPlayerName(%q) = %q, want %q", in, got, want)
		}
	}
}

func lookupOne(t *testing.T, table *dataset.Table, player string, season int) dataset.Row {
	t.Helper()
	rows := table.Lookup(player, season)
	if len(rows) != 1 {
		t.Fatalf("Lookup(%q, %d) = %d rows, want 1", player, season, len(rows))
	}
	return rows[0]
}
