package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/memory"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/ingestion"
	"github.com/sebaaaap/Dashboard-prueba1/internal/service/reporting"
	"github.com/sebaaaap/Dashboard-prueba1/internal/tabular"
)

// StoreOpener opens the configured record store.
type StoreOpener func(ctx context.Context) (repository.Store, error)

// App is the carwashctl command tree.
type App struct {
	rootCmd   *cobra.Command
	openStore StoreOpener
	loc       *time.Location
	logger    *zap.Logger
}

// NewApp builds the command tree. Calendar days are evaluated in loc.
func NewApp(version string, open StoreOpener, loc *time.Location, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{openStore: open, loc: loc, logger: logger}

	app.rootCmd = &cobra.Command{
		Use:           "carwashctl",
		Short:         "Car wash operations import and reporting tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	app.rootCmd.AddCommand(app.importCmd(), app.summaryCmd(), app.alertsCmd())
	return app
}

// Command exposes the root command, mainly for tests.
func (a *App) Command() *cobra.Command {
	return a.rootCmd
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Ingest a daily operations spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := tabular.DetectFormat(path)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			ds, err := tabular.Read(f, format)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			var store repository.Store
			if dryRun {
				store = memory.NewRepository()
			} else {
				store, err = a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer func() { _ = store.Close(context.Background()) }()
			}

			result, err := ingestion.NewService(store, a.logger.Named("svc.ingestion")).Ingest(cmd.Context(), ds)
			if err != nil {
				return err
			}

			title := "Imported " + path
			if dryRun {
				title += " (dry run)"
			}
			return renderTable(cmd.OutOrStdout(), title, ingestRows(result))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and count records without writing to the store")
	return cmd
}

func (a *App) summaryCmd() *cobra.Command {
	var period, from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print revenue, services and profit for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := reporting.PeriodRequest{Period: period}
			if from != "" {
				t, err := reporting.ParseDate(from)
				if err != nil {
					return err
				}
				req.Start = &t
			}
			if to != "" {
				t, err := reporting.ParseDate(to)
				if err != nil {
					return err
				}
				req.End = &t
			}

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(context.Background()) }()

			svc := reporting.NewService(store, a.loc, a.logger.Named("svc.reporting"))
			summary, err := svc.PeriodRevenue(cmd.Context(), req)
			if err != nil {
				return err
			}

			title := fmt.Sprintf("%s: %s to %s", summary.Period, summary.Start, summary.End)
			return renderTable(cmd.OutOrStdout(), title, pterm.TableData{
				{"Metric", "Value"},
				{"Revenue", money(summary.Revenue)},
				{"Services", fmt.Sprint(summary.ServicesCount)},
				{"Net profit", money(summary.NetProfit)},
				{"Average ticket", money(summary.AverageTicket)},
			})
		},
	}

	cmd.Flags().StringVar(&period, "period", reporting.PeriodMonth, "today, week or month")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD), requires --to")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD), requires --from")
	return cmd
}

func (a *App) alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "List low and high activity days of the last week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close(context.Background()) }()

			alerts, err := reporting.NewService(store, a.loc, a.logger.Named("svc.reporting")).Alerts(cmd.Context())
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No alerts in the last 7 days")
				return err
			}

			data := pterm.TableData{{"Date", "Kind", "Title", "Description"}}
			for _, al := range alerts {
				data = append(data, []string{al.Date.Format("2006-01-02"), al.Kind, al.Title, al.Description})
			}
			return renderTable(cmd.OutOrStdout(), "Alerts", data)
		},
	}
}

func ingestRows(r models.IngestResult) pterm.TableData {
	return pterm.TableData{
		{"Records", "Count"},
		{"Days inserted", fmt.Sprint(r.DaysInserted)},
		{"Services inserted", fmt.Sprint(r.ServicesInserted)},
		{"Costs inserted", fmt.Sprint(r.CostsInserted)},
		{"Rows skipped", fmt.Sprint(r.RowsSkipped)},
	}
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func renderTable(w io.Writer, title string, data pterm.TableData) error {
	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n", title, table)
	return err
}
