package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"pak-index/feature/cosmetics"

	"github.com/spf13/cobra"
)

var listFlag bool

// itemCmd prints one composed item, or lists the ids of a type.
var itemCmd = &cobra.Command{
	Use:   "item <type> [id]",
	Short: "Print a composed item as JSON",
	Long: `Extracts the configured packages and prints the composed view of one item.
With --list, prints every id of the given type instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !listFlag && len(args) != 2 {
			return fmt.Errorf("item id is required unless --list is set")
		}

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		svc, err := cosmetics.NewService(rt.engine, cosmetics.DefaultItemTypes(), rt.log)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if listFlag {
			ids, err := svc.List(args[0])
			if err != nil {
				return err
			}
			return enc.Encode(ids)
		}

		view, err := svc.Item(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return enc.Encode(view)
	},
}

func init() {
	itemCmd.Flags().BoolVar(&listFlag, "list", false, "List the ids of the type instead of printing one item")
	RootCmd.AddCommand(itemCmd)
}
