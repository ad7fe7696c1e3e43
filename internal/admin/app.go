package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/finance-flow/internal/logger"
	"github.com/MKhiriev/finance-flow/internal/service"
	"github.com/MKhiriev/finance-flow/internal/store"
	"github.com/MKhiriev/finance-flow/internal/tui"
	"github.com/MKhiriev/finance-flow/internal/validators"
	"github.com/MKhiriev/finance-flow/models"
)

const usage = `Usage: admin [flags] <command>

Commands:
  stats            Show database statistics and financial summary
  clients          List all clients
  entries          List all finance entries
  invoices         List all invoices with services
  settings         Show all settings
  users            List all users with their last login
  export [file]    Export all data to a JSON file
  clear            Clear all data except settings (requires confirmation)
  promote <email>  Grant the admin role to a user
  version          Show build information
`

type App struct {
	services  *service.Services
	buildInfo models.AppBuildInfo

	in  io.Reader
	out io.Writer

	// confirm asks before destructive commands.
	confirm func(prompt string) (bool, error)
	now     func() time.Time

	logger *logger.Logger
}

// NewApp builds the console over repos. Only the ledger, data, analytics and
// admin services are wired; the console never authenticates anyone.
func NewApp(repos *store.Repositories, buildInfo models.AppBuildInfo, in io.Reader, out io.Writer, log *logger.Logger) *App {
	validator := validators.NewRequestValidator()

	a := &App{
		services: &service.Services{
			ClientService:    service.NewClientService(repos.ClientRepository, validator, log),
			EntryService:     service.NewEntryService(repos.EntryRepository, validator, log),
			InvoiceService:   service.NewInvoiceService(repos.InvoiceRepository, validator, log),
			SettingService:   service.NewSettingService(repos.SettingRepository, validator, log),
			DataService:      service.NewDataService(repos.DataRepository, validator, log),
			AnalyticsService: service.NewAnalyticsService(repos.EntryRepository, validator, log),
			AdminService:     service.NewAdminService(repos.UserRepository, log),
		},
		buildInfo: buildInfo,
		in:        in,
		out:       out,
		now:       time.Now,
		logger:    log,
	}
	a.confirm = func(prompt string) (bool, error) {
		return tui.Confirm(prompt, a.in, a.out)
	}

	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.print(usage)
		return nil
	}

	switch args[0] {
	case "stats":
		return a.stats(ctx)
	case "clients":
		clients, err := a.services.ClientService.ListClients(ctx)
		if err != nil {
			return err
		}
		a.print(tui.RenderClients(clients))
	case "entries":
		entries, err := a.services.EntryService.ListEntries(ctx, models.EntryFilter{})
		if err != nil {
			return err
		}
		a.print(tui.RenderEntries(entries))
	case "invoices":
		invoices, err := a.services.InvoiceService.ListInvoices(ctx)
		if err != nil {
			return err
		}
		a.print(tui.RenderInvoices(invoices))
	case "settings":
		settings, err := a.services.SettingService.GetAllSettings(ctx)
		if err != nil {
			return err
		}
		a.print(tui.RenderSettings(settings))
	case "users":
		users, err := a.services.AdminService.ListUsers(ctx)
		if err != nil {
			return err
		}
		a.print(tui.RenderUsers(users))
	case "export":
		return a.export(ctx, args[1:])
	case "clear":
		return a.clear(ctx)
	case "promote":
		return a.promote(ctx, args[1:])
	case "version":
		a.print(tui.RenderBuildInfo(a.buildInfo))
	case "help", "-h", "--help":
		a.print(usage)
	default:
		a.print(usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	return nil
}

func (a *App) stats(ctx context.Context) error {
	stats, err := a.services.DataService.Stats(ctx)
	if err != nil {
		return err
	}
	summary, err := a.services.AnalyticsService.FinancialSummary(ctx, models.EntryFilter{})
	if err != nil {
		return err
	}

	a.print(tui.RenderStats(stats, summary))
	return nil
}

// export writes the same document as GET /api/export, indented.
func (a *App) export(ctx context.Context, args []string) error {
	now := a.now()

	path := fmt.Sprintf("financeflow_backup_%s.json", now.Format(time.DateOnly))
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	doc, err := a.services.DataService.ExportAll(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding export: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing export file: %w", err)
	}

	a.logger.Info().Str("path", path).Msg("data exported")
	a.print(tui.RenderExported(path, now))
	return nil
}

func (a *App) clear(ctx context.Context) error {
	ok, err := a.confirm("Are you sure you want to clear ALL data? Settings are kept.")
	if err != nil {
		return err
	}
	if !ok {
		a.print("Operation cancelled.\n")
		return nil
	}

	if err = a.services.DataService.ClearAll(ctx); err != nil {
		return err
	}
	a.print("All data has been cleared!\n")
	return nil
}

func (a *App) promote(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return ErrMissingEmail
	}

	if err := a.services.AdminService.PromoteUser(ctx, args[0]); err != nil {
		return err
	}
	a.print(fmt.Sprintf("User %s has been promoted to ADMIN.\n", args[0]))
	return nil
}

func (a *App) print(s string) {
	fmt.Fprint(a.out, s)
}
