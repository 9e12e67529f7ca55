// Package run provides the run command.
package run

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/foodsync/internal/appcontext"
	"github.com/agentstation/foodsync/internal/cmd/alerts"
	"github.com/agentstation/foodsync/internal/cmd/output"
	"github.com/agentstation/foodsync/internal/cmd/table"
	"github.com/agentstation/foodsync/internal/pipeline"
	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
)

// Flags holds the run command flags.
type Flags struct {
	SupplierID       int
	OutputDir        string
	LedgerPath       string
	Fields           []string
	IgnoreCategories []string
	NoPinCategories  bool
	XLSX             bool
	MessageFile      string
}

// NewCommand creates the run command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "run <supplier> [input]",
		GroupID: "core",
		Short:   "Convert a supplier catalog into a Foodsoft upload",
		Long: `Run reads the supplier's article list, keeps manual changes made on
Foodsoft since the last upload, makes article names unique, shortens
overlong fields and writes a new CSV file to the output directory.

The supplier's platform ID, input file and ignored categories may be set
in the suppliers section of the config file.`,
		Example: `  foodsync run Bio bio-prices.csv --supplier-id 7
  foodsync run Bio --xlsx --message-file message.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.RunOptions(args[0])
			if len(args) > 1 {
				opts.Input = args[1]
			}
			flags.apply(cmd, opts)

			result, err := app.Runner().Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return Print(cmd, app.OutputFormat(), result, flags.MessageFile)
		},
	}

	cmd.Flags().IntVar(&flags.SupplierID, "supplier-id", 0, "supplier ID on Foodsoft")
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "root directory of the exports")
	cmd.Flags().StringVar(&flags.LedgerPath, "ledger", "", "configuration document holding the manual changes")
	cmd.Flags().StringSliceVar(&flags.Fields, "fields", nil, "fields compared for manual changes")
	cmd.Flags().StringSliceVar(&flags.IgnoreCategories, "ignore-category", nil, "category excluded from the export (repeatable)")
	cmd.Flags().BoolVar(&flags.NoPinCategories, "no-pin-categories", false, "let the supplier's categories override the platform's")
	cmd.Flags().BoolVar(&flags.XLSX, "xlsx", false, "also write a spreadsheet copy of the export")
	cmd.Flags().StringVar(&flags.MessageFile, "message-file", "", "write the composed message to a file")

	return cmd
}

// apply overrides opts with the flags set on the command line.
func (f *Flags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("supplier-id") {
		opts.SupplierID = f.SupplierID
	}
	if changed("output-dir") {
		opts.OutputDir = f.OutputDir
	}
	if changed("ledger") {
		opts.LedgerPath = f.LedgerPath
	}
	if changed("fields") {
		opts.CompareFields = f.Fields
	}
	if changed("ignore-category") {
		opts.IgnoreCategories = append(opts.IgnoreCategories, f.IgnoreCategories...)
	}
	if changed("no-pin-categories") {
		opts.PinCategories = !f.NoPinCategories
	}
	if changed("xlsx") {
		opts.XLSX = f.XLSX
	}
}

// Print writes the result of a run. Table output shows the composed
// message on stdout and the notifications as alerts on stderr; wide output
// adds the article changes. Structured formats emit the whole result.
func Print(cmd *cobra.Command, format string, result *pipeline.Result, messageFile string) error {
	if messageFile != "" {
		if err := os.WriteFile(messageFile, []byte(result.Message), constants.FilePermissions); err != nil {
			return errors.WrapIO("write", messageFile, err)
		}
	}

	w := cmd.OutOrStdout()
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	if f.Structured() {
		return output.Encode(w, f, result)
	}

	fmt.Fprintln(w, result.Message)
	if f == output.FormatWide && result.Changes.HasChanges() {
		if err := output.Table(w, table.ChangesetToTableData(result.Changes)); err != nil {
			return err
		}
	}

	notes := make([]*alerts.Alert, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		notes = append(notes, alerts.FromNotification(n))
	}
	status := alerts.NewFormatWriter(cmd.ErrOrStderr(), f)
	if err := alerts.WriteAll(status, notes...); err != nil {
		return err
	}
	return status.WriteAlert(alerts.NewSuccess(result.Summary()))
}
