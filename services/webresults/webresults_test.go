package webresults

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"precinct-results/lib/restyutil"
	"precinct-results/lib/telemetry"
	"precinct-results/services/tally/sinks"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const landingPage = `<html><body>
<div class="panel">
  <h4 class="panel-title"><a href="#c1">Presidential  Electors</a></h4>
  <button class="btn btn-warning btnCandPrecincts" value="101">Precincts</button>
</div>
<div class="panel">
  <h4 class="panel-title"><a href="#c2">Delegate to the National Convention</a></h4>
</div>
<div class="panel">
  <h4 class="panel-title"><a href="#c3">Attorney General</a></h4>
  <button class="btn btn-warning btnCandPrecincts" value="102">Precincts</button>
</div>
<div class="panel">
  <h4 class="panel-title"><a href="#c4">Auditor General</a></h4>
  <button class="btn btn-warning btnCandPrecincts" value="103">Precincts</button>
</div>
</body></html>`

var contestResults = map[string][]Result{
	"101": {
		{PrecinctName: "Barrett", Party: "DEM", FirstName: "Joseph R", LastName: "Biden", TotalVotes: 1200},
		{PrecinctName: "Barrett", Party: "REP", FirstName: "Donald J", LastName: "Trump", TotalVotes: 1100},
	},
	"102": {
		{PrecinctName: "Barrett", Party: "DEM", FirstName: "Josh", LastName: "Shapiro", TotalVotes: 1250},
	},
	"103": {},
}

type recorded struct {
	queries []string
}

func newServer(t testing.TB, rec *recorded) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/elections/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, landingPage)
	})
	mux.HandleFunc("/elections/getData.ashx", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if rec != nil {
			rec.queries = append(rec.queries, query.Get("el_off_id"))
		}
		if query.Get("electionid") != "53" || query.Get("type") != "precinct" || query.Get("partyname") != " " {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		results, ok := contestResults[query.Get("el_off_id")]
		if !ok {
			http.Error(w, "unknown contest", http.StatusInternalServerError)
			return
		}
		err := json.NewEncoder(w).Encode(results)
		require.NoError(t, err)
	})
	return httptest.NewServer(mux)
}

func newClient(t testing.TB, server *httptest.Server, offices ...string) *Client {
	client, err := NewClient(Options{
		BaseUrl:    server.URL + "/elections/",
		ElectionID: "53",
		County:     "Monroe",
		Offices:    offices,
	}, nil)
	require.NoError(t, err)
	return client
}

func TestMain(m *testing.M) {
	cleanup := telemetry.SetupForTesting("test:services/webresults")
	defer cleanup()
	m.Run()
}

func TestFetchContestsFromPanels(t *testing.T) {
	server := newServer(t, nil)
	defer server.Close()

	contests, err := newClient(t, server).FetchContests(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Contest{
		{ID: "101", Office: "Presidential Electors", Title: "Presidential Electors"},
		{ID: "102", Office: "Attorney General", Title: "Attorney General"},
		{ID: "103", Office: "Auditor General", Title: "Auditor General"},
	}, contests)
}

func TestFetchContestsConfigured(t *testing.T) {
	server := newServer(t, nil)
	defer server.Close()

	contests, err := newClient(t, server, "Presidential Electors", "Attorney General").
		FetchContests(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 2)
	require.Equal(t, Contest{ID: "101", Office: "Presidential Electors", Title: "Presidential Electors"}, contests[0])
	require.Equal(t, "102", contests[1].ID)
	require.Equal(t, "Attorney General", contests[1].Title)

	_, err = newClient(t, server, "A", "B", "C", "D").FetchContests(context.Background())
	require.Error(t, err)
}

func TestMatchContests(t *testing.T) {
	matches := MatchContests(
		[]string{"Attorney General", "Auditer General", "State Treasurer"},
		[]string{"Auditor General", "attorney  general"},
	)
	require.Equal(t, 1, matches[0].Index)
	require.Equal(t, float64(1), matches[0].Similarity)
	require.Equal(t, 0, matches[1].Index)
	require.Greater(t, matches[1].Similarity, 0.9)
	require.Equal(t, -1, matches[2].Index)
}

func TestFetchResults(t *testing.T) {
	server := newServer(t, nil)
	defer server.Close()
	client := newClient(t, server)

	results, err := client.FetchResults(context.Background(), "101")
	require.NoError(t, err)
	require.Equal(t, contestResults["101"], results)

	_, err = client.FetchResults(context.Background(), "999")
	require.Error(t, err)
}

func TestScrape(t *testing.T) {
	rec := &recorded{}
	server := newServer(t, rec)
	defer server.Close()

	buff := &bytes.Buffer{}
	sink := sinks.NewCSV(buff)
	summary, err := newClient(t, server).Scrape(context.Background(), sink)
	require.NoError(t, err)
	require.NoError(t, sink.Flush())

	require.Equal(t, 3, summary.Pages)
	require.Equal(t, 3, summary.Records)
	require.Equal(t, []string{"101", "102", "103"}, rec.queries)
	require.Equal(t, strings.Join([]string{
		"county,precinct,office,district,party,candidate,votes",
		"Monroe,Barrett,Presidential Electors,,DEM,Joseph R Biden,1200",
		"Monroe,Barrett,Presidential Electors,,REP,Donald J Trump,1100",
		"Monroe,Barrett,Attorney General,,DEM,Josh Shapiro,1250",
		"",
	}, "\n"), buff.String())
}

func TestNewClientValidates(t *testing.T) {
	_, err := NewClient(Options{ElectionID: "53"}, nil)
	require.Error(t, err)
	_, err = NewClient(Options{BaseUrl: "http://localhost"}, nil)
	require.Error(t, err)
}

func TestHttpDump(t *testing.T) {
	server := newServer(t, nil)
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "resty")
	dump, err := restyutil.NewFilesystemOutput(dir)
	require.NoError(t, err)

	client, err := NewClient(Options{
		BaseUrl:    server.URL + "/elections/",
		ElectionID: "53",
	}, dump)
	require.NoError(t, err)
	_, err = client.FetchResults(context.Background(), "102")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "---- RESPONSE ----")
	require.Contains(t, string(contents), "Shapiro")
}
