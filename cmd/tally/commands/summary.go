package commands

import (
	"os"
	"precinct-results/lib/serviceutil"
	"precinct-results/services/resultstore"
	"precinct-results/services/resultstore/db"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var summaryStore *outputFlags
var summaryRun *string
var summaryColumn *string

func init() {
	summaryStore = &outputFlags{
		dbFile:  summaryCmd.Flags().String("db", "<dev_state>/results.db", "SQLite file runs are stored in."),
		dbUrl:   summaryCmd.Flags().String("db-url", "", "libsql server runs are stored in, defaults to $TALLY_DB_URL."),
		dbToken: summaryCmd.Flags().String("db-auth-token", "", "Auth token for --db-url, defaults to $TALLY_DB_AUTH_TOKEN."),
	}
	summaryRun = summaryCmd.Flags().String("run", "", "Print the contest totals of this run.")
	summaryColumn = summaryCmd.Flags().String("column", "votes", "The count column to total.")
	rootCmd.AddCommand(summaryCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func formatDistrict(district int) string {
	if district == 0 {
		return ""
	}
	return strconv.Itoa(district)
}

var summaryCmd = &cobra.Command{
	Use:   "summary [--db <results.db>] [--run <run_id> [--column votes]]",
	Short: "Lists stored runs, or the contest totals of one run.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database, err := summaryStore.storeConfig().OpenDB(db.Schema)
		if err != nil {
			serviceutil.Fatal("failed to open result store", err)
		}
		defer database.Close()
		store := resultstore.NewStore(database)

		t := newTable()

		if *summaryRun == "" {
			runs, err := store.Runs(ctx)
			if err != nil {
				serviceutil.Fatal("failed to list runs", err)
			}
			t.AppendHeader(table.Row{"Run", "Source", "County", "Started", "Finished", "Records"})
			for _, r := range runs {
				finished := ""
				if !r.Finished.IsZero() {
					finished = r.Finished.Format(time.DateTime)
				}
				t.AppendRow(table.Row{
					r.ID, r.Source, r.County, r.Started.Format(time.DateTime), finished, r.Records,
				})
			}
			t.Render()
			return
		}

		totals, err := store.Totals(ctx, *summaryRun, *summaryColumn)
		if err != nil {
			serviceutil.Fatal("failed to total run", err)
		}
		t.AppendHeader(table.Row{"Office", "District", "Party", "Candidate", *summaryColumn})
		for _, total := range totals {
			t.AppendRow(table.Row{
				total.Office, formatDistrict(total.District), total.Party, total.Candidate, total.Value,
			})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Office", AutoMerge: true},
		})
		t.Render()
	},
}
