// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// MembershipPlanResponse is the JSON shape of a membership plan.
type MembershipPlanResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	FeeAmount    float64 `json:"fee_amount"`
	Currency     string  `json:"currency"`
	Description  *string `json:"description,omitempty"`
	Benefits     *string `json:"benefits,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Status       string  `json:"status"`
}

func storePlanToResponse(p store.MembershipPlan) MembershipPlanResponse {
	return MembershipPlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		FeeAmount:    p.FeeAmount,
		Currency:     p.Currency,
		Description:  util.StringPtrFromNull(p.Description),
		Benefits:     util.StringPtrFromNull(p.Benefits),
		Requirements: util.StringPtrFromNull(p.Requirements),
		Status:       p.Status,
	}
}

// ListPublishedMembershipPlans returns published plans, cheapest first.
func (h *Handler) ListPublishedMembershipPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.queries.ListPublishedMembershipPlans(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list membership plans")
		return
	}

	resp := make([]MembershipPlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, storePlanToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// MembershipApplicationRequest is the public application submission
// payload. Individual and corporate applications share one form; the
// corporate fields stay empty for individual applicants.
type MembershipApplicationRequest struct {
	FullName         string     `json:"full_name"`
	Phone            string     `json:"phone"`
	IDNumber         *string    `json:"id_number"`
	Email            string     `json:"email"`
	County           *string    `json:"county"`
	SubCounty        *string    `json:"sub_county"`
	Ward             *string    `json:"ward"`
	DiasporaCountry  *string    `json:"diaspora_country"`
	MpesaCode        *string    `json:"mpesa_code"`
	PaymentReference *string    `json:"payment_reference"`
	PaymentGateway   string     `json:"payment_gateway"`
	AmountPaid       *float64   `json:"amount_paid"`
	MembershipTier   string     `json:"membership_tier"`
	ChurchName       *string    `json:"church_name"`
	Title            *string    `json:"title"`
	TitleOther       *string    `json:"title_other"`
	ReferralName     *string    `json:"referral_name"`
	ReferralNumber   *string    `json:"referral_apeck_number"`
	ReferralPhone    *string    `json:"referral_phone"`
	Signature        *string    `json:"signature"`
	DeclarationDate  *time.Time `json:"declaration_date"`

	OrganizationName      *string `json:"organization_name"`
	OrganizationType      *string `json:"organization_type"`
	OrganizationTypeOther *string `json:"organization_type_other"`
	RegistrationNumber    *string `json:"registration_number"`
	OrganizationEmail     *string `json:"organization_email"`
	OrganizationPhone     *string `json:"organization_phone"`
	OrganizationAddress   *string `json:"organization_address"`
	OrganizationCounty    *string `json:"organization_county"`
	OrganizationSubCounty *string `json:"organization_sub_county"`
	OrganizationWard      *string `json:"organization_ward"`
	ChairpersonName       *string `json:"chairperson_name"`
	ChairpersonPhone      *string `json:"chairperson_phone"`
	ChairpersonEmail      *string `json:"chairperson_email"`
	SecretaryName         *string `json:"secretary_name"`
	SecretaryPhone        *string `json:"secretary_phone"`
	SecretaryEmail        *string `json:"secretary_email"`
	TreasurerName         *string `json:"treasurer_name"`
	TreasurerPhone        *string `json:"treasurer_phone"`
	TreasurerEmail        *string `json:"treasurer_email"`
	MembershipCount       *int64  `json:"membership_count"`
	YearEstablished       *string `json:"year_established"`
}

func (req *MembershipApplicationRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.FullName) == "" {
		fieldErrors["full_name"] = "Full name is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fieldErrors["phone"] = "Phone is required"
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email is required"
	}
	if req.MembershipTier == "" {
		fieldErrors["membership_tier"] = "Membership tier is required"
	}
	if req.PaymentGateway == "" {
		req.PaymentGateway = "mpesa"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// MembershipApplicationResponse is the JSON shape of an application.
// Payment and personal details are only exposed on the admin surface.
type MembershipApplicationResponse struct {
	ID               string     `json:"id"`
	FullName         string     `json:"full_name"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	County           *string    `json:"county,omitempty"`
	DiasporaCountry  *string    `json:"diaspora_country,omitempty"`
	PaymentReference *string    `json:"payment_reference,omitempty"`
	PaymentGateway   string     `json:"payment_gateway"`
	AmountPaid       *float64   `json:"amount_paid,omitempty"`
	MembershipTier   string     `json:"membership_tier"`
	Status           string     `json:"status"`
	Notes            *string    `json:"notes,omitempty"`
	OrganizationName *string    `json:"organization_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	EmailSentAt      *time.Time `json:"email_sent_at,omitempty"`
}

func storeApplicationToResponse(a store.MembershipApplication) MembershipApplicationResponse {
	var amount *float64
	if a.AmountPaid.Valid {
		v := a.AmountPaid.Float64
		amount = &v
	}
	return MembershipApplicationResponse{
		ID:               a.ID,
		FullName:         a.FullName,
		Phone:            a.Phone,
		Email:            a.Email,
		County:           util.StringPtrFromNull(a.County),
		DiasporaCountry:  util.StringPtrFromNull(a.DiasporaCountry),
		PaymentReference: util.StringPtrFromNull(a.PaymentReference),
		PaymentGateway:   a.PaymentGateway,
		AmountPaid:       amount,
		MembershipTier:   a.MembershipTier,
		Status:           a.Status,
		Notes:            util.StringPtrFromNull(a.Notes),
		OrganizationName: util.StringPtrFromNull(a.OrganizationName),
		CreatedAt:        a.CreatedAt,
		EmailSentAt:      util.TimePtrFromNull(a.EmailSentAt),
	}
}

// SubmitMembershipApplication accepts a public membership application.
// New applications always start in pending status.
func (h *Handler) SubmitMembershipApplication(w http.ResponseWriter, r *http.Request) {
	var req MembershipApplicationRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	var amount sql.NullFloat64
	if req.AmountPaid != nil {
		amount = sql.NullFloat64{Float64: *req.AmountPaid, Valid: true}
	}
	var count sql.NullInt64
	if req.MembershipCount != nil {
		count = sql.NullInt64{Int64: *req.MembershipCount, Valid: true}
	}

	ts := h.timestamp()
	app, err := h.queries.CreateMembershipApplication(r.Context(), store.CreateMembershipApplicationParams{
		ID:               uuid.NewString(),
		FullName:         strings.TrimSpace(req.FullName),
		Phone:            strings.TrimSpace(req.Phone),
		IDNumber:         util.NullStringFromPtr(req.IDNumber),
		Email:            strings.TrimSpace(req.Email),
		County:           util.NullStringFromPtr(req.County),
		SubCounty:        util.NullStringFromPtr(req.SubCounty),
		Ward:             util.NullStringFromPtr(req.Ward),
		DiasporaCountry:  util.NullStringFromPtr(req.DiasporaCountry),
		MpesaCode:        util.NullStringFromPtr(req.MpesaCode),
		PaymentReference: util.NullStringFromPtr(req.PaymentReference),
		PaymentGateway:   req.PaymentGateway,
		AmountPaid:       amount,
		MembershipTier:   req.MembershipTier,
		CreatedAt:        ts,
		UpdatedAt:        ts,

		ChurchName:          util.NullStringFromPtr(req.ChurchName),
		Title:               util.NullStringFromPtr(req.Title),
		TitleOther:          util.NullStringFromPtr(req.TitleOther),
		ReferralName:        util.NullStringFromPtr(req.ReferralName),
		ReferralApeckNumber: util.NullStringFromPtr(req.ReferralNumber),
		ReferralPhone:       util.NullStringFromPtr(req.ReferralPhone),
		Signature:           util.NullStringFromPtr(req.Signature),
		DeclarationDate:     util.NullTimeFromPtr(req.DeclarationDate),

		OrganizationName:      util.NullStringFromPtr(req.OrganizationName),
		OrganizationType:      util.NullStringFromPtr(req.OrganizationType),
		OrganizationTypeOther: util.NullStringFromPtr(req.OrganizationTypeOther),
		RegistrationNumber:    util.NullStringFromPtr(req.RegistrationNumber),
		OrganizationEmail:     util.NullStringFromPtr(req.OrganizationEmail),
		OrganizationPhone:     util.NullStringFromPtr(req.OrganizationPhone),
		OrganizationAddress:   util.NullStringFromPtr(req.OrganizationAddress),
		OrganizationCounty:    util.NullStringFromPtr(req.OrganizationCounty),
		OrganizationSubCounty: util.NullStringFromPtr(req.OrganizationSubCounty),
		OrganizationWard:      util.NullStringFromPtr(req.OrganizationWard),
		ChairpersonName:       util.NullStringFromPtr(req.ChairpersonName),
		ChairpersonPhone:      util.NullStringFromPtr(req.ChairpersonPhone),
		ChairpersonEmail:      util.NullStringFromPtr(req.ChairpersonEmail),
		SecretaryName:         util.NullStringFromPtr(req.SecretaryName),
		SecretaryPhone:        util.NullStringFromPtr(req.SecretaryPhone),
		SecretaryEmail:        util.NullStringFromPtr(req.SecretaryEmail),
		TreasurerName:         util.NullStringFromPtr(req.TreasurerName),
		TreasurerPhone:        util.NullStringFromPtr(req.TreasurerPhone),
		TreasurerEmail:        util.NullStringFromPtr(req.TreasurerEmail),
		MembershipCount:       count,
		YearEstablished:       util.NullStringFromPtr(req.YearEstablished),
	})
	if err != nil {
		h.logger.Error("failed to create membership application", "email", req.Email, "error", err)
		WriteInternalError(w, "Failed to submit application")
		return
	}

	h.logger.Info("membership application received",
		"id", app.ID, "tier", app.MembershipTier, "gateway", app.PaymentGateway)
	WriteCreated(w, MembershipApplicationResponse{
		ID:             app.ID,
		FullName:       app.FullName,
		Phone:          app.Phone,
		Email:          app.Email,
		PaymentGateway: app.PaymentGateway,
		MembershipTier: app.MembershipTier,
		Status:         app.Status,
		CreatedAt:      app.CreatedAt,
	})
}

// ListMembershipApplications returns applications for review, optionally
// filtered by ?status=.
func (h *Handler) ListMembershipApplications(w http.ResponseWriter, r *http.Request) {
	var status sql.NullString
	if s := r.URL.Query().Get("status"); s != "" {
		if !model.ValidApplicationStatus(s) {
			WriteBadRequest(w, "Unknown application status", nil)
			return
		}
		status = sql.NullString{String: s, Valid: true}
	}

	apps, err := h.queries.ListMembershipApplications(r.Context(), status)
	if err != nil {
		WriteInternalError(w, "Failed to list applications")
		return
	}

	resp := make([]MembershipApplicationResponse, 0, len(apps))
	for _, a := range apps {
		resp = append(resp, storeApplicationToResponse(a))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetMembershipApplication returns one application in full.
func (h *Handler) GetMembershipApplication(w http.ResponseWriter, r *http.Request) {
	app, ok := requireEntityByID(w, r, "application", func(id string) (store.MembershipApplication, error) {
		return h.queries.GetMembershipApplicationByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeApplicationToResponse(app), nil)
}

// ApplicationStatusRequest moves an application through review.
type ApplicationStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateMembershipApplicationStatus transitions an application to a new
// review status.
func (h *Handler) UpdateMembershipApplicationStatus(w http.ResponseWriter, r *http.Request) {
	app, ok := requireEntityByID(w, r, "application", func(id string) (store.MembershipApplication, error) {
		return h.queries.GetMembershipApplicationByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req ApplicationStatusRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if !model.ValidApplicationStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Unknown application status"})
		return
	}

	updated, err := h.queries.UpdateMembershipApplicationStatus(r.Context(), store.UpdateMembershipApplicationStatusParams{
		Status:    req.Status,
		Notes:     util.NullStringFromPtr(req.Notes),
		UpdatedAt: h.timestamp(),
		ID:        app.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update application")
		return
	}
	WriteSuccess(w, storeApplicationToResponse(updated), nil)
}

// MembershipPlanRequest is the admin payload for plans.
type MembershipPlanRequest struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	FeeAmount    float64 `json:"fee_amount"`
	Currency     string  `json:"currency"`
	Description  *string `json:"description"`
	Benefits     *string `json:"benefits"`
	Requirements *string `json:"requirements"`
	Status       string  `json:"status"`
}

func (req *MembershipPlanRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.FeeAmount < 0 {
		fieldErrors["fee_amount"] = "Fee must not be negative"
	}
	if req.Currency == "" {
		req.Currency = "KES"
	}
	if req.Status == "" {
		req.Status = model.StatusPublished
	} else if !model.ValidContentStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft or published"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Name)
	} else if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may only contain lowercase letters, numbers and hyphens"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// ListMembershipPlans returns all plans for the admin UI.
func (h *Handler) ListMembershipPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.queries.ListMembershipPlans(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list membership plans")
		return
	}

	resp := make([]MembershipPlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, storePlanToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreateMembershipPlan creates a plan.
func (h *Handler) CreateMembershipPlan(w http.ResponseWriter, r *http.Request) {
	var req MembershipPlanRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ts := h.timestamp()
	plan, err := h.queries.CreateMembershipPlan(r.Context(), store.CreateMembershipPlanParams{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Slug:         req.Slug,
		FeeAmount:    req.FeeAmount,
		Currency:     req.Currency,
		Description:  util.NullStringFromPtr(req.Description),
		Benefits:     util.NullStringFromPtr(req.Benefits),
		Requirements: util.NullStringFromPtr(req.Requirements),
		Status:       req.Status,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	if err != nil {
		h.logger.Error("failed to create membership plan", "slug", req.Slug, "error", err)
		WriteInternalError(w, "Failed to create membership plan")
		return
	}
	WriteCreated(w, storePlanToResponse(plan))
}

// UpdateMembershipPlan updates a plan.
func (h *Handler) UpdateMembershipPlan(w http.ResponseWriter, r *http.Request) {
	var req MembershipPlanRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	plan, err := h.queries.UpdateMembershipPlan(r.Context(), store.UpdateMembershipPlanParams{
		Name:         req.Name,
		Slug:         req.Slug,
		FeeAmount:    req.FeeAmount,
		Currency:     req.Currency,
		Description:  util.NullStringFromPtr(req.Description),
		Benefits:     util.NullStringFromPtr(req.Benefits),
		Requirements: util.NullStringFromPtr(req.Requirements),
		Status:       req.Status,
		UpdatedAt:    h.timestamp(),
		ID:           chi.URLParam(r, "id"),
	})
	if err != nil {
		if err == sql.ErrNoRows {
			WriteNotFound(w, "Membership plan not found")
			return
		}
		WriteInternalError(w, "Failed to update membership plan")
		return
	}
	WriteSuccess(w, storePlanToResponse(plan), nil)
}

// DeleteMembershipPlan removes a plan.
func (h *Handler) DeleteMembershipPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteMembershipPlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteInternalError(w, "Failed to delete membership plan")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}
