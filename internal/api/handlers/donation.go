package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	service "github.com/kwatiwellness/commerce-platform/internal/services"
	"github.com/kwatiwellness/commerce-platform/internal/utils"
	"github.com/kwatiwellness/commerce-platform/internal/utils/response"
)

type DonationHandler struct {
	donationService *service.DonationService
	validator       *validator.Validate
}

func NewDonationHandler(donationService *service.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
		validator:       validator.New(),
	}
}

func (h *DonationHandler) CreateDonation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.CreateDonationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		donation, err := h.donationService.CreateDonation(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to record donation",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Donation recorded",
			slog.String("userId", claims.UserID.String()),
			slog.String("donationId", donation.ID.String()))
		response.Success(w, http.StatusCreated, donation)
	}
}

// ListDonations returns the donor's own donations, or a project's donations
// when the project query parameter is present.
func (h *DonationHandler) ListDonations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var donations []models.Donation
		var err error

		if projectParam := r.URL.Query().Get("project"); projectParam != "" {

			projectID, parseErr := uuid.Parse(projectParam)
			if parseErr != nil {
				response.Error(w, errors.BadRequestError("Invalid project ID"))
				return
			}

			donations, err = h.donationService.ListByProject(r.Context(), projectID)

		} else {
			donations, err = h.donationService.ListByDonor(r.Context(), claims.UserID)
		}

		if err != nil {
			slog.Error("Failed to list donations",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"donations": donations,
			"total":     len(donations),
		})
	}
}

func (h *DonationHandler) GenerateReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		donationID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid donation ID"))
			return
		}

		donation, err := h.donationService.GenerateReceipt(r.Context(), claims.UserID, donationID)
		if err != nil {
			slog.Error("Failed to issue receipt",
				slog.String("userId", claims.UserID.String()),
				slog.String("donationId", donationID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Receipt issued",
			slog.String("userId", claims.UserID.String()),
			slog.String("donationId", donationID.String()))
		response.Success(w, http.StatusOK, donation)
	}
}

func (h *DonationHandler) RecordImpact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		donationID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid donation ID"))
			return
		}

		var req models.RecordImpactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		donation, err := h.donationService.RecordImpact(r.Context(), claims.UserID, donationID, &req)
		if err != nil {
			slog.Error("Failed to record impact metric",
				slog.String("userId", claims.UserID.String()),
				slog.String("donationId", donationID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, donation)
	}
}

func (h *DonationHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, ok := claimsFromRequest(w, r); !ok {
			return
		}

		stats, err := h.donationService.GetStats(r.Context())
		if err != nil {
			slog.Error("Failed to aggregate donation stats", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
