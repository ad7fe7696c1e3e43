package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/finance-flow/models"
)

const dateTimeLayout = "2006-01-02 15:04"

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderStats shows row counts and the ledger totals.
func RenderStats(stats models.Stats, summary models.FinancialSummary) string {
	rows := [][]string{
		{"Users", strconv.FormatInt(stats.Users, 10)},
		{"Clients", strconv.FormatInt(stats.Clients, 10)},
		{"Finance Entries", strconv.FormatInt(stats.Entries, 10)},
		{"Invoices", strconv.FormatInt(stats.Invoices, 10)},
		{"Settings", strconv.FormatInt(stats.Settings, 10)},
		{"Total Income", money(summary.TotalIncome)},
		{"Total Expense", money(summary.TotalExpense)},
		{"Pending", money(summary.PendingAmount)},
		{"Received", money(summary.ReceivedAmount)},
		{"Net Balance", money(summary.NetBalance)},
	}

	return renderSection("DATABASE STATISTICS", renderTable([]string{"Metric", "Value"}, rows), "")
}

func RenderClients(clients []models.Client) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Phone,
			valueOrDash(c.Address),
			c.CreatedAt.Format(dateTimeLayout),
		})
	}

	return renderSection("ALL CLIENTS",
		renderTable([]string{"ID", "Name", "Phone", "Address", "Created"}, rows),
		fmt.Sprintf("Total: %d clients", len(clients)))
}

func RenderEntries(entries []models.FinanceEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			e.ClientName,
			valueOrDash(e.Description),
			money(e.Amount),
			string(e.Type),
			string(e.Status),
			string(e.PaymentMode),
		})
	}

	return renderSection("ALL FINANCE ENTRIES",
		renderTable([]string{"ID", "Date", "Client", "Description", "Amount", "Type", "Status", "Payment Mode"}, rows),
		fmt.Sprintf("Total: %d entries", len(entries)))
}

// RenderInvoices lists invoices followed by the service lines of each
// invoice that has any.
func RenderInvoices(invoices []models.Invoice) string {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			strconv.FormatInt(inv.ID, 10),
			inv.InvoiceNumber,
			inv.ClientName,
			inv.InvoiceDate,
			money(inv.GrandTotal),
			string(inv.PaymentStatus),
		})
	}

	var b strings.Builder
	b.WriteString(renderSection("ALL INVOICES",
		renderTable([]string{"ID", "Number", "Client", "Date", "Grand Total", "Status"}, rows),
		fmt.Sprintf("Total: %d invoices", len(invoices))))

	for _, inv := range invoices {
		if len(inv.Services) == 0 {
			continue
		}

		serviceRows := make([][]string, 0, len(inv.Services))
		for _, s := range inv.Services {
			serviceRows = append(serviceRows, []string{
				s.Name,
				strconv.Itoa(s.Quantity),
				money(s.Rate),
				money(s.Amount),
			})
		}
		b.WriteString(renderSection("Services for "+inv.InvoiceNumber,
			renderTable([]string{"Name", "Quantity", "Rate", "Amount"}, serviceRows), ""))
	}

	return b.String()
}

// RenderSettings prints settings sorted by key.
func RenderSettings(settings map[string]models.SettingValue) string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, settings[k].Raw})
	}

	return renderSection("ALL SETTINGS",
		renderTable([]string{"Key", "Value"}, rows),
		fmt.Sprintf("Total: %d settings", len(settings)))
}

func RenderUsers(users []models.UserOverview) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		lastLogin := "-"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(dateTimeLayout)
		}
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Email,
			u.Role,
			strconv.FormatBool(u.IsVerified),
			u.CreatedAt.Format(dateTimeLayout),
			lastLogin,
		})
	}

	return renderSection("ALL USERS",
		renderTable([]string{"ID", "Name", "Email", "Role", "Verified", "Created", "Last Login"}, rows),
		fmt.Sprintf("Total: %d users", len(users)))
}

func RenderBuildInfo(info models.AppBuildInfo) string {
	rows := [][]string{
		{"Version", valueOrNA(info.BuildVersion())},
		{"Date", valueOrNA(info.BuildDate())},
		{"Commit", valueOrNA(info.BuildCommit())},
	}
	return renderSection("FinanceFlow Admin Utility", renderTable([]string{"Build", ""}, rows), "")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}

// RenderExported reports where an export was written.
func RenderExported(path string, at time.Time) string {
	return fmt.Sprintf("Data exported to: %s (%s)\n", path, at.Format(time.RFC3339))
}
