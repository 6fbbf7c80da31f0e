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

type PaymentMethodHandler struct {
	paymentService *service.PaymentMethodService
	validator      *validator.Validate
}

func NewPaymentMethodHandler(paymentService *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		paymentService: paymentService,
		validator:      validator.New(),
	}
}

func (h *PaymentMethodHandler) ListMethods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		set, err := h.paymentService.ListMethods(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to list payment methods",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, set)
	}
}

func (h *PaymentMethodHandler) AddMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.AddPaymentMethodRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.AddMethod(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to add payment method",
				slog.String("userId", claims.UserID.String()),
				slog.String("gateway", string(req.Gateway)),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Payment method added",
			slog.String("userId", claims.UserID.String()),
			slog.String("methodId", method.ID.String()))
		response.Success(w, http.StatusCreated, method)
	}
}

func (h *PaymentMethodHandler) RemoveMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		methodID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid payment method ID"))
			return
		}

		set, err := h.paymentService.RemoveMethod(r.Context(), claims.UserID, methodID)
		if err != nil {
			slog.Error("Failed to remove payment method",
				slog.String("userId", claims.UserID.String()),
				slog.String("methodId", methodID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, set)
	}
}

func (h *PaymentMethodHandler) SetDefault() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		methodID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid payment method ID"))
			return
		}

		set, err := h.paymentService.SetDefault(r.Context(), claims.UserID, methodID)
		if err != nil {
			slog.Error("Failed to set default payment method",
				slog.String("userId", claims.UserID.String()),
				slog.String("methodId", methodID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Default payment method set",
			slog.String("userId", claims.UserID.String()),
			slog.String("methodId", methodID.String()))
		response.Success(w, http.StatusOK, set)
	}
}

func (h *PaymentMethodHandler) SelectMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		methodID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid payment method ID"))
			return
		}

		set, err := h.paymentService.SelectMethod(r.Context(), claims.UserID, methodID)
		if err != nil {
			slog.Error("Failed to select payment method",
				slog.String("userId", claims.UserID.String()),
				slog.String("methodId", methodID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, set)
	}
}

func (h *PaymentMethodHandler) ProcessPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.ProcessPaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.paymentService.ProcessPayment(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to process payment",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Payment processed",
			slog.String("userId", claims.UserID.String()),
			slog.String("transactionId", result.TransactionID))
		response.Success(w, http.StatusOK, result)
	}
}
