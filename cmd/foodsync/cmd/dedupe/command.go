// Package dedupe provides the dedupe command.
package dedupe

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/foodsync/internal/appcontext"
	"github.com/agentstation/foodsync/internal/cmd/output"
	"github.com/agentstation/foodsync/internal/cmd/table"
	"github.com/agentstation/foodsync/internal/exports"
	"github.com/agentstation/foodsync/pkg/articles"
	"github.com/agentstation/foodsync/pkg/articles/csvcodec"
	dd "github.com/agentstation/foodsync/pkg/dedupe"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/validate"
)

// NewCommand creates the dedupe command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "dedupe <file>",
		GroupID: "management",
		Short:   "Make the article names of a file unique",
		Long: `Dedupe reads an article list (CSV or XLSX), renames articles whose
names collide and prints the renames. With --write the resolved list is
written as an upload CSV.`,
		Example: `  foodsync dedupe bio-prices.csv
  foodsync dedupe bio-prices.xlsx --write bio-unique.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := exports.ReadFile(args[0])
			if err != nil {
				return err
			}
			articles.KeepOrigUnits(list)
			list = articles.RemoveIgnored(list)
			notes := validate.Articles(list)

			renames := dd.Resolve(list)
			app.Logger().Debug().
				Int("articles", len(list)).
				Int("renamed", len(renames)).
				Int("adjusted", len(notes)).
				Msg("Resolved duplicate names")

			if out != "" {
				if err := write(out, list); err != nil {
					return err
				}
			}
			return output.Emit(cmd.OutOrStdout(), app.OutputFormat(), table.RenamesToTableData(renames), renames)
		},
	}

	cmd.Flags().StringVar(&out, "write", "", "write the resolved list to this CSV file")

	return cmd
}

func write(path string, list []articles.Article) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := csvcodec.Write(f, list); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}
