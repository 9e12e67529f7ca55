// Package ledger provides the ledger command for inspecting and editing the
// recorded manual changes.
package ledger

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/foodsync/internal/appcontext"
	"github.com/agentstation/foodsync/internal/cmd/output"
	"github.com/agentstation/foodsync/internal/cmd/table"
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/errors"
)

// NewCommand creates the ledger command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ledger",
		GroupID: "management",
		Short:   "Inspect and edit recorded manual changes",
		Long: `Ledger shows the manual changes recorded per supplier and lets you
forget them, so that the supplier's values are exported again.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newShowCommand(app))
	cmd.AddCommand(newForgetCommand(app))

	return cmd
}

func newListCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List suppliers with a ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := app.LedgerStore()
			names, err := store.Suppliers()
			if err != nil {
				return err
			}

			type row struct {
				Supplier   string `json:"supplier" yaml:"supplier"`
				Changes    int    `json:"changes" yaml:"changes"`
				LastExport string `json:"last_export" yaml:"last_export"`
			}
			rows := make([]row, 0, len(names))
			data := table.Data{Headers: []string{"Supplier", "Changes", "Last Export"}}
			for _, name := range names {
				seg, err := store.Load(name)
				if err != nil {
					return err
				}
				r := row{Supplier: name, Changes: seg.ManualChanges.Len(), LastExport: seg.LastExport}
				rows = append(rows, r)
				data.Rows = append(data.Rows, []string{r.Supplier, fmt.Sprint(r.Changes), r.LastExport})
			}
			return output.Emit(cmd.OutOrStdout(), app.OutputFormat(), data, rows)
		},
	}
}

func newShowCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "show <supplier>",
		Short:   "Show the manual changes of a supplier",
		Args:    cobra.ExactArgs(1),
		Example: `  foodsync ledger show Bio --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			seg, err := app.LedgerStore().Load(args[0])
			if err != nil {
				return err
			}
			entries := seg.ManualChanges.Entries()
			return output.Emit(cmd.OutOrStdout(), app.OutputFormat(), table.LedgerToTableData(entries), entries)
		},
	}
}

func newForgetCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <supplier> <order-number> [field]",
		Short: "Forget manual changes of an article",
		Long: `Forget removes the recorded manual change of one field of an article,
or of all its fields when no field is given. The next run exports the
supplier's value again.`,
		Example: `  foodsync ledger forget Bio 1042 price_net
  foodsync ledger forget Bio 1042`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := app.LedgerStore()
			seg, err := store.Load(args[0])
			if err != nil {
				return err
			}

			removed := 0
			if len(args) == 3 {
				field, err := articles.ParseField(args[2])
				if err != nil {
					return errors.NewValidationError("field", args[2], err.Error())
				}
				if seg.ManualChanges.Delete(args[1], field) {
					removed = 1
				}
			} else {
				removed = seg.ManualChanges.DeleteArticle(args[1])
			}

			if removed == 0 {
				return errors.NewNotFoundError("manual change", args[1])
			}
			if err := store.Save(seg); err != nil {
				return err
			}

			app.Logger().Info().Str("supplier", args[0]).Str("order_number", args[1]).Int("removed", removed).Msg("Forgot manual changes")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d manual change(s) of article %s.\n", removed, args[1])
			return nil
		},
	}
}
