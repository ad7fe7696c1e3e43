// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/MKhiriev/finance-flow/models"
)

const (
	tableUsers           = "users"
	tableLoginHistory    = "login_history"
	tableClients         = "clients"
	tableEntries         = "finance_entries"
	tableInvoices        = "invoices"
	tableInvoiceServices = "invoice_services"
	tableSettings        = "settings"
)

var (
	userColumns = []string{
		"id", "name", "email", "phone", "password", "avatar", "role", "is_verified",
		"verification_token", "reset_token", "reset_token_expiry", "otp", "otp_expiry", "created_at",
	}

	clientColumns = []string{"id", "name", "phone", "address", "created_at", "updated_at"}

	entryColumns = []string{
		"id", "date", "client_name", "description", "amount", "type", "status", "payment_mode",
		"created_at", "updated_at",
	}

	invoiceColumns = []string{
		"id", "invoice_number", "agency_name", "agency_contact", "agency_address", "agency_logo",
		"client_name", "client_phone", "client_address", "invoice_date", "due_date",
		"subtotal", "tax_percent", "tax_amount", "discount_percent", "discount_amount", "grand_total",
		"payment_status", "created_at", "updated_at",
	}

	invoiceServiceColumns = []string{"id", "invoice_id", "name", "quantity", "rate", "amount"}

	settingColumns = []string{"key", "value", "updated_at"}
)

// ---------------------------------------------------------------- users

func buildCreateUserQuery(sb squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	role := user.Role
	if role == "" {
		role = models.RoleUser
	}

	return sb.Insert(tableUsers).
		Columns("name", "email", "phone", "password", "role", "is_verified", "verification_token", "created_at").
		Values(user.Name, user.Email, user.Phone, user.PasswordHash, role, user.IsVerified, user.VerificationToken, user.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildFindUserQuery(sb squirrel.StatementBuilderType, column string, value any) (string, []any, error) {
	return sb.Select(userColumns...).
		From(tableUsers).
		Where(squirrel.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildEmailTakenQuery(sb squirrel.StatementBuilderType, email string, userID int64) (string, []any, error) {
	return sb.Select("COUNT(*)").
		From(tableUsers).
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.NotEq{"id": userID}).
		ToSql()
}

// buildUpdateUserQuery writes only the fields that are set in changes.
func buildUpdateUserQuery(sb squirrel.StatementBuilderType, userID int64, changes models.UserChanges) (string, []any, error) {
	set := make(map[string]any, 5)
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.Phone != nil {
		set["phone"] = *changes.Phone
	}
	if changes.Avatar != nil {
		set["avatar"] = *changes.Avatar
	}
	if changes.PasswordHash != nil {
		set["password"] = *changes.PasswordHash
	}

	return buildSetUserFieldsQuery(sb, squirrel.Eq{"id": userID}, set)
}

func buildSetUserFieldsQuery(sb squirrel.StatementBuilderType, where squirrel.Sqlizer, set map[string]any) (string, []any, error) {
	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}

	return sb.Update(tableUsers).
		SetMap(set).
		Where(where).
		ToSql()
}

func buildListUsersQuery(sb squirrel.StatementBuilderType) (string, []any, error) {
	return sb.Select(
		"u.id", "u.name", "u.email", "u.role", "u.is_verified", "u.created_at",
		"MAX(lh.created_at) AS last_login",
	).
		From(tableUsers + " u").
		LeftJoin(tableLoginHistory + " lh ON lh.user_id = u.id").
		GroupBy("u.id", "u.name", "u.email", "u.role", "u.is_verified", "u.created_at").
		OrderBy("u.created_at DESC", "u.id DESC").
		ToSql()
}

func buildDeleteQuery(sb squirrel.StatementBuilderType, table string, where squirrel.Sqlizer) (string, []any, error) {
	q := sb.Delete(table)
	if where != nil {
		q = q.Where(where)
	}
	return q.ToSql()
}

func buildCountQuery(sb squirrel.StatementBuilderType, table string) (string, []any, error) {
	return sb.Select("COUNT(*)").From(table).ToSql()
}

// ---------------------------------------------------------------- login history

func buildRecordLoginQuery(sb squirrel.StatementBuilderType, entry models.LoginHistory) (string, []any, error) {
	return sb.Insert(tableLoginHistory).
		Columns("user_id", "ip_address", "user_agent", "created_at").
		Values(entry.UserID, entry.IPAddress, entry.UserAgent, entry.CreatedAt).
		ToSql()
}

func buildKnownDeviceQuery(sb squirrel.StatementBuilderType, userID int64, userAgent string) (string, []any, error) {
	return sb.Select("COUNT(*)").
		From(tableLoginHistory).
		Where(squirrel.Eq{"user_id": userID, "user_agent": userAgent}).
		ToSql()
}

// ---------------------------------------------------------------- clients

func buildListClientsQuery(sb squirrel.StatementBuilderType) (string, []any, error) {
	return sb.Select(clientColumns...).
		From(tableClients).
		OrderBy("name ASC").
		ToSql()
}

func buildGetClientQuery(sb squirrel.StatementBuilderType, id int64) (string, []any, error) {
	return sb.Select(clientColumns...).
		From(tableClients).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildCreateClientQuery(sb squirrel.StatementBuilderType, client models.Client) (string, []any, error) {
	return sb.Insert(tableClients).
		Columns("name", "phone", "address", "created_at", "updated_at").
		Values(client.Name, client.Phone, client.Address, client.CreatedAt, client.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateClientQuery(sb squirrel.StatementBuilderType, id int64, update models.ClientUpdate, now time.Time) (string, []any, error) {
	q := sb.Update(tableClients).Set("updated_at", now)
	if update.Name != nil {
		q = q.Set("name", *update.Name)
	}
	if update.Phone != nil {
		q = q.Set("phone", *update.Phone)
	}
	if update.Address != nil {
		q = q.Set("address", *update.Address)
	}

	return q.Where(squirrel.Eq{"id": id}).ToSql()
}

// ---------------------------------------------------------------- entries

func buildListEntriesQuery(sb squirrel.StatementBuilderType, filter models.EntryFilter) (string, []any, error) {
	q := sb.Select(entryColumns...).From(tableEntries)

	if filter.StartDate != "" {
		q = q.Where(squirrel.GtOrEq{"date": filter.StartDate})
	}
	if filter.EndDate != "" {
		q = q.Where(squirrel.LtOrEq{"date": filter.EndDate})
	}
	// month is zero-based, stored dates are YYYY-MM-DD
	if filter.Month != nil {
		q = q.Where(squirrel.Expr("substr(date, 6, 2) = ?", fmt.Sprintf("%02d", *filter.Month+1)))
	}
	if filter.Year != nil {
		q = q.Where(squirrel.Expr("substr(date, 1, 4) = ?", fmt.Sprintf("%04d", *filter.Year)))
	}
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": string(filter.Type)})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if filter.PaymentMode != "" {
		q = q.Where(squirrel.Eq{"payment_mode": string(filter.PaymentMode)})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		q = q.Where(squirrel.Or{
			squirrel.Expr("LOWER(client_name) LIKE LOWER(?)", pattern),
			squirrel.Expr("LOWER(COALESCE(description, '')) LIKE LOWER(?)", pattern),
		})
	}

	return q.OrderBy("date DESC", "created_at DESC", "id DESC").ToSql()
}

func buildGetEntryQuery(sb squirrel.StatementBuilderType, id int64) (string, []any, error) {
	return sb.Select(entryColumns...).
		From(tableEntries).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildCreateEntryQuery(sb squirrel.StatementBuilderType, entry models.FinanceEntry) (string, []any, error) {
	return sb.Insert(tableEntries).
		Columns("date", "client_name", "description", "amount", "type", "status", "payment_mode", "created_at", "updated_at").
		Values(entry.Date, entry.ClientName, entry.Description, entry.Amount,
			string(entry.Type), string(entry.Status), string(entry.PaymentMode), entry.CreatedAt, entry.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdateEntryQuery(sb squirrel.StatementBuilderType, id int64, update models.EntryUpdate, now time.Time) (string, []any, error) {
	q := sb.Update(tableEntries).Set("updated_at", now)
	if update.Date != nil {
		q = q.Set("date", *update.Date)
	}
	if update.ClientName != nil {
		q = q.Set("client_name", *update.ClientName)
	}
	if update.Description != nil {
		q = q.Set("description", *update.Description)
	}
	if update.Amount != nil {
		q = q.Set("amount", *update.Amount)
	}
	if update.Type != nil {
		q = q.Set("type", string(*update.Type))
	}
	if update.Status != nil {
		q = q.Set("status", string(*update.Status))
	}
	if update.PaymentMode != nil {
		q = q.Set("payment_mode", string(*update.PaymentMode))
	}

	return q.Where(squirrel.Eq{"id": id}).ToSql()
}

// ---------------------------------------------------------------- invoices

func buildListInvoicesQuery(sb squirrel.StatementBuilderType) (string, []any, error) {
	return sb.Select(invoiceColumns...).
		From(tableInvoices).
		OrderBy("invoice_date DESC", "created_at DESC", "id DESC").
		ToSql()
}

func buildGetInvoiceQuery(sb squirrel.StatementBuilderType, id int64) (string, []any, error) {
	return sb.Select(invoiceColumns...).
		From(tableInvoices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildLastInvoiceNumberQuery(sb squirrel.StatementBuilderType) (string, []any, error) {
	return sb.Select("invoice_number").
		From(tableInvoices).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
}

func buildInvoiceNumberExistsQuery(sb squirrel.StatementBuilderType, number string) (string, []any, error) {
	return sb.Select("COUNT(*)").
		From(tableInvoices).
		Where(squirrel.Eq{"invoice_number": number}).
		ToSql()
}

func buildCreateInvoiceQuery(sb squirrel.StatementBuilderType, inv models.Invoice) (string, []any, error) {
	status := inv.PaymentStatus
	if status == "" {
		status = models.InvoicePending
	}

	return sb.Insert(tableInvoices).
		Columns(
			"invoice_number", "agency_name", "agency_contact", "agency_address", "agency_logo",
			"client_name", "client_phone", "client_address", "invoice_date", "due_date",
			"subtotal", "tax_percent", "tax_amount", "discount_percent", "discount_amount", "grand_total",
			"payment_status", "created_at", "updated_at",
		).
		Values(
			inv.InvoiceNumber, inv.AgencyName, inv.AgencyContact, inv.AgencyAddress, inv.AgencyLogo,
			inv.ClientName, inv.ClientPhone, inv.ClientAddress, inv.InvoiceDate, inv.DueDate,
			inv.Subtotal, inv.TaxPercent, inv.TaxAmount, inv.DiscountPercent, inv.DiscountAmount, inv.GrandTotal,
			string(status), inv.CreatedAt, inv.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
}

// buildInsertServicesQuery inserts every service row in one statement.
func buildInsertServicesQuery(sb squirrel.StatementBuilderType, invoiceID int64, services []models.InvoiceService) (string, []any, error) {
	if len(services) == 0 {
		return "", nil, fmt.Errorf("%w: no services to insert", ErrBuildingSQLQuery)
	}

	q := sb.Insert(tableInvoiceServices).Columns("invoice_id", "name", "quantity", "rate", "amount")
	for _, s := range services {
		q = q.Values(invoiceID, s.Name, s.Quantity, s.Rate, s.Amount)
	}

	return q.ToSql()
}

func buildSelectServicesQuery(sb squirrel.StatementBuilderType, invoiceIDs []int64) (string, []any, error) {
	return sb.Select(invoiceServiceColumns...).
		From(tableInvoiceServices).
		Where(squirrel.Eq{"invoice_id": invoiceIDs}).
		OrderBy("invoice_id", "id").
		ToSql()
}

func buildUpdateInvoiceQuery(sb squirrel.StatementBuilderType, id int64, u models.InvoiceUpdate, now time.Time) (string, []any, error) {
	q := sb.Update(tableInvoices).Set("updated_at", now)

	setString := func(column string, v *string) {
		if v != nil {
			q = q.Set(column, *v)
		}
	}
	setFloat := func(column string, v *float64) {
		if v != nil {
			q = q.Set(column, *v)
		}
	}

	setString("agency_name", u.AgencyName)
	setString("agency_contact", u.AgencyContact)
	setString("agency_address", u.AgencyAddress)
	setString("agency_logo", u.AgencyLogo)
	setString("client_name", u.ClientName)
	setString("client_phone", u.ClientPhone)
	setString("client_address", u.ClientAddress)
	setString("invoice_date", u.InvoiceDate)
	setString("due_date", u.DueDate)
	setFloat("subtotal", u.Subtotal)
	setFloat("tax_percent", u.TaxPercent)
	setFloat("tax_amount", u.TaxAmount)
	setFloat("discount_percent", u.DiscountPercent)
	setFloat("discount_amount", u.DiscountAmount)
	setFloat("grand_total", u.GrandTotal)
	if u.PaymentStatus != nil {
		q = q.Set("payment_status", string(*u.PaymentStatus))
	}

	return q.Where(squirrel.Eq{"id": id}).ToSql()
}

// ---------------------------------------------------------------- settings

func buildListSettingsQuery(sb squirrel.StatementBuilderType) (string, []any, error) {
	return sb.Select(settingColumns...).
		From(tableSettings).
		OrderBy("key").
		ToSql()
}

func buildGetSettingQuery(sb squirrel.StatementBuilderType, key string) (string, []any, error) {
	return sb.Select(settingColumns...).
		From(tableSettings).
		Where(squirrel.Eq{"key": key}).
		ToSql()
}

// buildUpsertSettingQuery relies on ON CONFLICT, which both PostgreSQL and
// SQLite (3.24+) understand with identical syntax.
func buildUpsertSettingQuery(sb squirrel.StatementBuilderType, key, value string, now time.Time) (string, []any, error) {
	return sb.Insert(tableSettings).
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}
