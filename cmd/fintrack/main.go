package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/ui"
)

func main() {
	cli.LoadEnvFile()

	ctx, stop := cli.SignalContext()
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	cfg      *config.Config
	settings config.Settings
	logger   *log.Logger
	stdout   io.Writer
	stderr   io.Writer
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}
	switch args[0] {
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	}

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), stderr)
	cfg, err := cli.LoadAndValidateConfig(logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a := &app{
		cfg:      cfg,
		settings: cli.LoadSettingsOrDefault(cfg.SettingsFile, logger),
		logger:   logger.WithComponent(log.ComponentCLI),
		stdout:   stdout,
		stderr:   stderr,
	}

	switch args[0] {
	case "add":
		err = a.runAdd(ctx, args[1:])
	case "list":
		err = a.runList(ctx, args[1:])
	case "filter":
		err = a.runFilter(ctx, args[1:])
	case "report":
		err = a.runReport(ctx, args[1:])
	case "export":
		err = a.runExport(ctx, args[1:])
	case "config":
		err = a.runConfig(args[1:])
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		a.logger.Debug("Command failed", log.FieldOperation, args[0], log.FieldError, err)
		fmt.Fprintln(stderr, userMessage(err))
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Personal Finance Tracker")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  fintrack <command> [options]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  add       Record an income or expense")
	fmt.Fprintln(w, "  list      Show all transactions")
	fmt.Fprintln(w, "  filter    Show transactions mentioning a month and year")
	fmt.Fprintln(w, "  report    Show the income vs expenses breakdown")
	fmt.Fprintln(w, "  export    Copy the transaction file, optionally to Google Sheets")
	fmt.Fprintln(w, "  config    Show or change settings")
	fmt.Fprintln(w, "  help      Show this help message")
	fmt.Fprintln(w, "\nRun 'fintrack <command> -h' for more information on a command.")
}

// userMessage turns an error into the text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Error: Please enter a valid amount."
	case errors.Is(err, core.ErrInvalidType):
		return "Error: Type must be Income or Expense."
	case errors.Is(err, core.ErrInvalidSelection):
		return "Error: Please select both month and year."
	case errors.Is(err, core.ErrStoreMissing):
		return "Error: No transactions file found. Start by adding transactions."
	}
	return fmt.Sprintf("Error: An error occurred: %v", err)
}

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) service(ctx context.Context, opts cli.ServiceOptions) (*services.TransactionService, error) {
	return cli.NewService(ctx, a.cfg, a.settings, a.logger, opts)
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	typ := fs.String("type", "", "Income or Expense")
	amount := fs.String("amount", "", "amount, e.g. 12.50")
	category := fs.String("category", "", "category, e.g. Salary")
	description := fs.String("description", "", "free text; include the date (e.g. 2024-03-05) so filter can find it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := core.ParseTransactionType(*typ)
	if err != nil {
		return err
	}

	svc, err := a.service(ctx, cli.ServiceOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	tx, err := svc.Record(ctx, core.Draft{
		Type:        t,
		Amount:      *amount,
		Category:    *category,
		Description: *description,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Transaction added: %s - %s in %s.\n", tx.Type, core.FormatMoney(tx.Amount), tx.Category)
	return nil
}

func (a *app) runList(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(ctx, cli.ServiceOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	txs, err := svc.List(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.stdout, "No transactions found.")
		return nil
	}
	return ui.RenderTable(a.stdout, a.settings.Title, txs, ui.NewTheme(a.settings))
}

func (a *app) runFilter(ctx context.Context, args []string) error {
	fs := a.newFlagSet("filter")
	month := fs.String("month", "", "month name, e.g. March")
	year := fs.String("year", "", "four digit year, e.g. 2024")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(ctx, cli.ServiceOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	txs, err := svc.Filter(ctx, *month, *year)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("%s %s", displayMonth(*month), *year)
	if len(txs) == 0 {
		fmt.Fprintf(a.stdout, "No transactions found for %s.\n", label)
		return nil
	}
	return ui.RenderTable(a.stdout, "Transactions for "+label, txs, ui.NewTheme(a.settings))
}

func (a *app) runReport(ctx context.Context, args []string) error {
	fs := a.newFlagSet("report")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc, err := a.service(ctx, cli.ServiceOptions{})
	if err != nil {
		return err
	}
	defer svc.Close()

	sum, err := svc.Report(ctx)
	if err != nil {
		return err
	}
	return ui.RenderReport(a.stdout, sum, ui.NewTheme(a.settings))
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := a.newFlagSet("export")
	dest := fs.String("o", "", "destination CSV file")
	toSheets := fs.Bool("sheets", false, "also mirror the ledger to Google Sheets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dest == "" && !*toSheets {
		return errors.New("-o is required unless -sheets is given")
	}

	svc, err := a.service(ctx, cli.ServiceOptions{Sheets: *toSheets})
	if err != nil {
		return err
	}
	defer svc.Close()

	if *dest != "" {
		if _, err := svc.Export(ctx, *dest); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Transactions exported successfully to %s.\n", *dest)
	}

	if *toSheets {
		sheetsCtx, cancel := context.WithTimeout(ctx, a.cfg.NetworkTimeout)
		defer cancel()
		ref, n, err := svc.MirrorToSheets(sheetsCtx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%d transactions written to %s.\n", n, ref)
	}
	return nil
}

func (a *app) runConfig(args []string) error {
	if len(args) == 0 || args[0] == "show" {
		for _, key := range config.Keys() {
			v, _ := a.settings.Get(key)
			fmt.Fprintf(a.stdout, "%-16s %s\n", key, v)
		}
		return nil
	}

	if args[0] != "set" || len(args) != 3 {
		return errors.New("usage: fintrack config show | fintrack config set <key> <value>")
	}

	s := a.settings
	if err := s.Set(args[1], args[2]); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := config.SaveSettings(a.cfg.SettingsFile, s); err != nil {
		return err
	}
	a.logger.Info("Settings saved", log.FieldOperation, log.OpSave, log.FieldPath, a.cfg.SettingsFile)
	fmt.Fprintf(a.stdout, "%s set to %s.\n", args[1], args[2])
	return nil
}

// displayMonth returns the canonical spelling of a month name.
func displayMonth(m string) string {
	if n, ok := core.MonthNumber(m); ok {
		return core.MonthNames()[n-1]
	}
	return m
}
