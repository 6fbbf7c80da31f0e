package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	service "github.com/kwatiwellness/commerce-platform/internal/services"
	"github.com/kwatiwellness/commerce-platform/internal/utils"
	"github.com/kwatiwellness/commerce-platform/internal/utils/response"
)

type PriceAlertHandler struct {
	alertService *service.PriceAlertService
	validator    *validator.Validate
}

func NewPriceAlertHandler(alertService *service.PriceAlertService) *PriceAlertHandler {
	return &PriceAlertHandler{
		alertService: alertService,
		validator:    validator.New(),
	}
}

func (h *PriceAlertHandler) GetActiveAlerts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		alerts, err := h.alertService.GetActiveAlerts(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to get price alerts",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"alerts": alerts,
			"total":  len(alerts),
		})
	}
}

func (h *PriceAlertHandler) SetAlert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.SetPriceAlertRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		alert, err := h.alertService.SetAlert(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to set price alert",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Price alert set",
			slog.String("userId", claims.UserID.String()),
			slog.String("productId", req.ProductID))
		response.Success(w, http.StatusCreated, alert)
	}
}

func (h *PriceAlertHandler) UpdateAlert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		var req models.UpdatePriceAlertRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		alert, err := h.alertService.UpdateAlert(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			slog.Error("Failed to update price alert",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, alert)
	}
}

func (h *PriceAlertHandler) RemoveAlert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		if err := h.alertService.RemoveAlert(r.Context(), claims.UserID, productID); err != nil {
			slog.Error("Failed to remove price alert",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"removed": true})
	}
}

func (h *PriceAlertHandler) BatchUpdateAlerts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.BatchUpdateAlertsRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithError(err))
			return
		}

		if len(req.Updates) == 0 {
			response.Error(w, errors.ValidationError("At least one update is required"))
			return
		}

		results, err := h.alertService.BatchUpdateAlerts(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to batch update price alerts",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"results": results,
			"total":   len(results),
		})
	}
}

func (h *PriceAlertHandler) CheckAlerts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		triggered, err := h.alertService.CheckAlerts(r.Context(), claims.UserID, claims.Email)
		if err != nil {
			slog.Error("Failed to check price alerts",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Price alerts checked",
			slog.String("userId", claims.UserID.String()),
			slog.Int("triggered", len(triggered)))
		response.Success(w, http.StatusOK, map[string]any{
			"triggered": triggered,
			"total":     len(triggered),
		})
	}
}
