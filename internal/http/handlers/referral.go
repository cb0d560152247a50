package handlers

import (
	"encoding/json"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/referly/referral-be/internal/http/respond"
	"github.com/referly/referral-be/internal/mail"
	"github.com/referly/referral-be/internal/models"
	"github.com/referly/referral-be/internal/models/dto"
	"github.com/referly/referral-be/internal/storage"
	"github.com/referly/referral-be/internal/validate"
)

// AllProgramsFilter is the sentinel filter value meaning "no filter".
const AllProgramsFilter = "All Programs"

// ReferralHandler owns referral creation and listing.
type ReferralHandler struct {
	referrals storage.ReferralStore
	mailer    mail.Sender
}

// NewReferralHandler constructs the handler.
func NewReferralHandler(referrals storage.ReferralStore, mailer mail.Sender) *ReferralHandler {
	return &ReferralHandler{referrals: referrals, mailer: mailer}
}

// Register attaches referral routes to the mux.
func (h *ReferralHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/referrals", h.handleCreate)
	mux.HandleFunc("/getReferrals", h.handleList)
}

func (h *ReferralHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if err := validate.Struct(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}

	referral, err := h.referrals.CreateReferral(r.Context(), models.Referral{
		Name:           req.Name,
		ReferenceBonus: req.ReferenceBonus,
		RefereeBonus:   req.RefereeBonus,
		Email:          req.Email,
	})
	if err != nil {
		zlog.Error().Err(err).Msg("referral: create failed")
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// The row is committed at this point; a mail failure does not roll back
	// the referral.
	if err := h.mailer.SendReferralConfirmation(r.Context(), referral); err != nil {
		zlog.Error().Err(err).Str("to", referral.Email).Msg("referral: confirmation email failed")
		respond.Error(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	respond.JSON(w, http.StatusCreated, dto.CreateReferralResponse{Referral: referral})
}

func (h *ReferralHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter := listFilter(r)
	if filter != "" && filter != AllProgramsFilter {
		referrals, err := h.referrals.ListReferralsByProgram(r.Context(), filter)
		if err != nil {
			zlog.Error().Err(err).Str("filter", filter).Msg("referral: filtered list failed")
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		summaries := make([]dto.ReferralSummary, 0, len(referrals))
		for _, ref := range referrals {
			summaries = append(summaries, dto.ReferralSummary{
				Name:           ref.Name,
				ReferenceBonus: ref.ReferenceBonus,
				RefereeBonus:   ref.RefereeBonus,
			})
		}
		respond.JSON(w, http.StatusOK, summaries)
		return
	}

	referrals, err := h.referrals.ListReferrals(r.Context())
	if err != nil {
		zlog.Error().Err(err).Msg("referral: list failed")
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.JSON(w, http.StatusOK, referrals)
}

// listFilter reads the program filter from the query string, falling back to
// a JSON body for clients that still send the filter there.
func listFilter(r *http.Request) string {
	if filter := r.URL.Query().Get("filter"); filter != "" {
		return filter
	}
	var req dto.ListReferralsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.Filter
}
