package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"pak-index/feature/packages"

	"github.com/spf13/cobra"
)

// packagesCmd prints the opened packages and category buckets.
var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List opened packages and category buckets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		svc := packages.NewService(rt.engine, rt.catalog, rt.log)
		svc.Record(ctx)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		status := svc.Status()
		fmt.Fprintln(w, "PACKAGE\tKEY\tFILES\tOPENED")
		for _, p := range status.Packages {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.ID, p.KeyFingerprint, p.Files, p.OpenedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(w, "\nindexed files: %d\n\n", status.Files)

		fmt.Fprintln(w, "CATEGORY\tMATCHED\tTHRESHOLD\tRECORDS")
		for _, c := range svc.Categories().Categories {
			records := "-"
			if c.Materialized {
				records = fmt.Sprint(c.Records)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", c.Name, c.Matched, c.Threshold, records)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(packagesCmd)
}
