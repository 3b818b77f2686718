package commands

import (
	"fmt"
	"os"
	"precinct-results/lib/serviceutil"
	"precinct-results/services/tally"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout [name|path]",
	Short: "Lists the built-in layouts, or validates and prints one layout as YAML.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			var names []string
			for name := range tally.Layouts {
				names = append(names, name)
			}
			slices.Sort(names)

			t := newTable()
			t.AppendHeader(table.Row{"Layout", "County", "Columns"})
			for _, name := range names {
				layout := tally.Layouts[name]
				t.AppendRow(table.Row{name, layout.County, fmt.Sprint(layout.OutputColumns())})
			}
			t.Render()
			return
		}

		layout, err := resolveLayout(args[0])
		if err != nil {
			serviceutil.Fatal("invalid layout", err)
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		err = enc.Encode(layout)
		if err != nil {
			serviceutil.Fatal("failed to encode layout", err)
		}
		enc.Close()
	},
}
