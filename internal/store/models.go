// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID                  string
	FirstName           string
	LastName            string
	Email               string
	PasswordHash        string
	Role                string
	IsActive            bool
	LastLoginAt         sql.NullTime
	ResetToken          sql.NullString
	ResetTokenExpiresAt sql.NullTime
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type UserSession struct {
	ID               string
	UserID           string
	RefreshTokenHash string
	UserAgent        sql.NullString
	IPAddress        sql.NullString
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type MediaAsset struct {
	ID        string
	FileName  string
	URL       string
	AltText   sql.NullString
	MimeType  sql.NullString
	Width     sql.NullInt64
	Height    sql.NullInt64
	Category  sql.NullString
	CreatedBy sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Page struct {
	ID              string
	Slug            string
	Title           string
	Excerpt         sql.NullString
	Status          string
	SeoTitle        sql.NullString
	SeoDescription  sql.NullString
	SeoMetadata     sql.NullString
	FeaturedMediaID sql.NullString
	DeletedAt       sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PageSection struct {
	ID           string
	PageID       string
	Key          string
	DisplayOrder int64
	Status       string
	Content      string
	DeletedAt    sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Route struct {
	ID        string
	Slug      string
	Target    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewsPost struct {
	ID               string
	Slug             string
	Title            string
	Excerpt          sql.NullString
	Body             sql.NullString
	Status           string
	PublishedAt      sql.NullTime
	HeroMediaID      sql.NullString
	AuthorID         sql.NullString
	HeroImageURL     sql.NullString
	ShowOnHome       bool
	HomeDisplayOrder int64
	ReadingTime      sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Event struct {
	ID           string
	Title        string
	Slug         string
	Description  sql.NullString
	StartDate    time.Time
	EndDate      sql.NullTime
	Location     sql.NullString
	Category     sql.NullString
	Status       string
	CoverMediaID sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Program struct {
	ID          string
	Title       string
	Slug        string
	Summary     sql.NullString
	Body        sql.NullString
	Status      string
	HeroMediaID sql.NullString
	Metadata    sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MembershipPlan struct {
	ID           string
	Name         string
	Slug         string
	FeeAmount    float64
	Currency     string
	Description  sql.NullString
	Benefits     sql.NullString
	Requirements sql.NullString
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MembershipApplication struct {
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
	Status           string
	Notes            sql.NullString
	EmailSent        bool
	EmailSentAt      sql.NullTime
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Individual clergy details
	ChurchName          sql.NullString
	Title               sql.NullString
	TitleOther          sql.NullString
	ReferralName        sql.NullString
	ReferralApeckNumber sql.NullString
	ReferralPhone       sql.NullString
	Signature           sql.NullString
	DeclarationDate     sql.NullTime

	// Corporate applicant details
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

type EmailRecipient struct {
	ID           string
	Email        string
	Name         sql.NullString
	Type         string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ContentSetting struct {
	ID        string
	Key       string
	Value     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PasswordResetToken struct {
	ID           string
	UserID       string
	CodeHash     string
	PlainPreview sql.NullString
	ExpiresAt    time.Time
	UsedAt       sql.NullTime
	RequestIP    sql.NullString
	UserAgent    sql.NullString
	CreatedAt    time.Time
}
