package commands

import (
	"log/slog"
	"precinct-results/lib/serviceutil"
	"precinct-results/lib/tokens"
	"precinct-results/services/tally"
	"time"

	"github.com/spf13/cobra"
)

var documentLayout *string
var documentOutput *outputFlags

func init() {
	documentLayout = documentCmd.Flags().StringP(
		"layout", "l", "perry-2020-primary",
		"A built-in layout name or the path to a layout file.",
	)
	documentOutput = registerOutputFlags(documentCmd)
	rootCmd.AddCommand(documentCmd)
}

func resolveLayout(nameOrPath string) (tally.Layout, error) {
	layout, ok := tally.Layouts[nameOrPath]
	if ok {
		return layout, layout.Validate()
	}
	return tally.LoadLayout(nameOrPath)
}

var documentCmd = &cobra.Command{
	Use:   "document <tokens.json5|tokens.txt> [--layout <name|path>] [-o out.csv] [--db <results.db>]",
	Short: "Extracts records from the token dump of a paginated results export.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		layout, err := resolveLayout(*documentLayout)
		if err != nil {
			serviceutil.Fatal("failed to load layout", err)
		}
		doc, err := tokens.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to read token dump", err)
		}

		out, err := documentOutput.open(ctx, "document", layout.County)
		if err != nil {
			serviceutil.Fatal("failed to open output", err)
		}

		t1 := time.Now()
		driver := tally.Driver{Layout: layout, Sink: out}
		summary, err := driver.Run(ctx, doc)
		closeErr := out.close(err)
		if err != nil {
			serviceutil.Fatal("failed to extract records", err)
		}
		if closeErr != nil {
			serviceutil.Fatal("failed to write output", closeErr)
		}
		t2 := time.Now()

		slog.Info(
			"extracted records",
			"pages", summary.Pages,
			"records", summary.Records,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
