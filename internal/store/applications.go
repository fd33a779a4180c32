// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const applicationColumns = `id, full_name, phone, id_number, email, county, sub_county,
	ward, diaspora_country, mpesa_code, payment_reference, payment_gateway, amount_paid,
	membership_tier, status, notes, email_sent, email_sent_at, created_at, updated_at,
	church_name, title, title_other, referral_name, referral_apeck_number, referral_phone,
	signature, declaration_date,
	organization_name, organization_type, organization_type_other, registration_number,
	organization_email, organization_phone, organization_address, organization_county,
	organization_sub_county, organization_ward, chairperson_name, chairperson_phone,
	chairperson_email, secretary_name, secretary_phone, secretary_email, treasurer_name,
	treasurer_phone, treasurer_email, membership_count, year_established`

func scanApplication(row interface{ Scan(...interface{}) error }) (MembershipApplication, error) {
	var a MembershipApplication
	err := row.Scan(
		&a.ID, &a.FullName, &a.Phone, &a.IDNumber, &a.Email, &a.County, &a.SubCounty,
		&a.Ward, &a.DiasporaCountry, &a.MpesaCode, &a.PaymentReference, &a.PaymentGateway,
		&a.AmountPaid, &a.MembershipTier, &a.Status, &a.Notes, &a.EmailSent, &a.EmailSentAt,
		&a.CreatedAt, &a.UpdatedAt,
		&a.ChurchName, &a.Title, &a.TitleOther, &a.ReferralName, &a.ReferralApeckNumber,
		&a.ReferralPhone, &a.Signature, &a.DeclarationDate,
		&a.OrganizationName, &a.OrganizationType, &a.OrganizationTypeOther,
		&a.RegistrationNumber, &a.OrganizationEmail, &a.OrganizationPhone,
		&a.OrganizationAddress, &a.OrganizationCounty, &a.OrganizationSubCounty,
		&a.OrganizationWard, &a.ChairpersonName, &a.ChairpersonPhone, &a.ChairpersonEmail,
		&a.SecretaryName, &a.SecretaryPhone, &a.SecretaryEmail, &a.TreasurerName,
		&a.TreasurerPhone, &a.TreasurerEmail, &a.MembershipCount, &a.YearEstablished,
	)
	return a, err
}

type CreateMembershipApplicationParams struct {
	ID               string
	FullName         string
	Phone            string
	IDNumber         sql.NullString
	Email            string
	County           sql.NullString
	SubCounty        sql.NullString
	Ward             sql.NullString
	DiasporaCountry  sql.NullString
	MpesaCode        sql.NullString
	PaymentReference sql.NullString
	PaymentGateway   string
	AmountPaid       sql.NullFloat64
	MembershipTier   string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	ChurchName          sql.NullString
	Title               sql.NullString
	TitleOther          sql.NullString
	ReferralName        sql.NullString
	ReferralApeckNumber sql.NullString
	ReferralPhone       sql.NullString
	Signature           sql.NullString
	DeclarationDate     sql.NullTime

	OrganizationName      sql.NullString
	OrganizationType      sql.NullString
	OrganizationTypeOther sql.NullString
	RegistrationNumber    sql.NullString
	OrganizationEmail     sql.NullString
	OrganizationPhone     sql.NullString
	OrganizationAddress   sql.NullString
	OrganizationCounty    sql.NullString
	OrganizationSubCounty sql.NullString
	OrganizationWard      sql.NullString
	ChairpersonName       sql.NullString
	ChairpersonPhone      sql.NullString
	ChairpersonEmail      sql.NullString
	SecretaryName         sql.NullString
	SecretaryPhone        sql.NullString
	SecretaryEmail        sql.NullString
	TreasurerName         sql.NullString
	TreasurerPhone        sql.NullString
	TreasurerEmail        sql.NullString
	MembershipCount       sql.NullInt64
	YearEstablished       sql.NullString
}

func (q *Queries) CreateMembershipApplication(ctx context.Context, arg CreateMembershipApplicationParams) (MembershipApplication, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO membership_applications (
			id, full_name, phone, id_number, email, county, sub_county, ward,
			diaspora_country, mpesa_code, payment_reference, payment_gateway, amount_paid,
			membership_tier, created_at, updated_at,
			church_name, title, title_other, referral_name, referral_apeck_number,
			referral_phone, signature, declaration_date,
			organization_name, organization_type, organization_type_other, registration_number,
			organization_email, organization_phone, organization_address, organization_county,
			organization_sub_county, organization_ward, chairperson_name, chairperson_phone,
			chairperson_email, secretary_name, secretary_phone, secretary_email,
			treasurer_name, treasurer_phone, treasurer_email, membership_count, year_established
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+applicationColumns,
		arg.ID, arg.FullName, arg.Phone, arg.IDNumber, arg.Email, arg.County,
		arg.SubCounty, arg.Ward, arg.DiasporaCountry, arg.MpesaCode, arg.PaymentReference,
		arg.PaymentGateway, arg.AmountPaid, arg.MembershipTier, arg.CreatedAt, arg.UpdatedAt,
		arg.ChurchName, arg.Title, arg.TitleOther, arg.ReferralName, arg.ReferralApeckNumber,
		arg.ReferralPhone, arg.Signature, arg.DeclarationDate,
		arg.OrganizationName, arg.OrganizationType, arg.OrganizationTypeOther,
		arg.RegistrationNumber, arg.OrganizationEmail, arg.OrganizationPhone,
		arg.OrganizationAddress, arg.OrganizationCounty, arg.OrganizationSubCounty,
		arg.OrganizationWard, arg.ChairpersonName, arg.ChairpersonPhone, arg.ChairpersonEmail,
		arg.SecretaryName, arg.SecretaryPhone, arg.SecretaryEmail, arg.TreasurerName,
		arg.TreasurerPhone, arg.TreasurerEmail, arg.MembershipCount, arg.YearEstablished,
	)
	return scanApplication(row)
}

func (q *Queries) GetMembershipApplicationByID(ctx context.Context, id string) (MembershipApplication, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM membership_applications WHERE id = ?`, id)
	return scanApplication(row)
}

// ListMembershipApplications returns applications newest first,
// optionally filtered by status.
func (q *Queries) ListMembershipApplications(ctx context.Context, status sql.NullString) ([]MembershipApplication, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status.Valid {
		rows, err = q.db.QueryContext(ctx,
			`SELECT `+applicationColumns+` FROM membership_applications WHERE status = ? ORDER BY created_at DESC`,
			status.String)
	} else {
		rows, err = q.db.QueryContext(ctx,
			`SELECT `+applicationColumns+` FROM membership_applications ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []MembershipApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

type UpdateMembershipApplicationStatusParams struct {
	Status    string
	Notes     sql.NullString
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateMembershipApplicationStatus(ctx context.Context, arg UpdateMembershipApplicationStatusParams) (MembershipApplication, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE membership_applications SET status = ?, notes = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+applicationColumns,
		arg.Status, arg.Notes, arg.UpdatedAt, arg.ID,
	)
	return scanApplication(row)
}

func (q *Queries) MarkApplicationEmailSent(ctx context.Context, id string, sentAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE membership_applications SET email_sent = 1, email_sent_at = ?, updated_at = ? WHERE id = ?`,
		sentAt, sentAt, id,
	)
	return err
}
