package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	service "github.com/kwatiwellness/commerce-platform/internal/services"
	"github.com/kwatiwellness/commerce-platform/internal/utils"
	"github.com/kwatiwellness/commerce-platform/internal/utils/response"
)

type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
	validator      *validator.Validate
}

func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyService: loyaltyService,
		validator:      validator.New(),
	}
}

func (h *LoyaltyHandler) GetProgram() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		program, err := h.loyaltyService.GetProgram(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to get loyalty program",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, program)
	}
}

func (h *LoyaltyHandler) UpdatePoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.UpdatePointsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		program, err := h.loyaltyService.UpdatePoints(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to update points",
				slog.String("userId", claims.UserID.String()),
				slog.Int("delta", req.Delta),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Points updated",
			slog.String("userId", claims.UserID.String()),
			slog.Int("delta", req.Delta),
			slog.Int("balance", program.Points))
		response.Success(w, http.StatusOK, program)
	}
}

func (h *LoyaltyHandler) RedeemPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.RedeemPointsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		program, err := h.loyaltyService.RedeemPoints(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to redeem points",
				slog.String("userId", claims.UserID.String()),
				slog.Int("points", req.Points),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Points redeemed",
			slog.String("userId", claims.UserID.String()),
			slog.Int("points", req.Points),
			slog.String("reward", req.Reward))
		response.Success(w, http.StatusOK, program)
	}
}

func (h *LoyaltyHandler) TransferPoints() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.TransferPointsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		program, err := h.loyaltyService.TransferPoints(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to transfer points",
				slog.String("userId", claims.UserID.String()),
				slog.String("targetUserId", req.TargetUserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Points transferred",
			slog.String("userId", claims.UserID.String()),
			slog.String("targetUserId", req.TargetUserID.String()),
			slog.Int("points", req.Points))
		response.Success(w, http.StatusOK, program)
	}
}

func (h *LoyaltyHandler) CheckTierProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		progress, err := h.loyaltyService.CheckTierProgress(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to check tier progress",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, progress)
	}
}
