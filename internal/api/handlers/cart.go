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

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to get cart",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to add cart item",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Cart item added",
			slog.String("userId", claims.UserID.String()),
			slog.String("productId", req.ProductID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
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

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			slog.Error("Failed to remove cart item",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
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

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			slog.Error("Failed to update item quantity",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateItemOptions() http.HandlerFunc {
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

		var req models.UpdateOptionsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateItemOptions(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			slog.Error("Failed to update item options",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			slog.Error("Failed to clear cart",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Cart cleared", slog.String("userId", claims.UserID.String()))
		response.Success(w, http.StatusOK, map[string]bool{"cleared": true})
	}
}

func (h *CartHandler) ApplyCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.ApplyCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.ApplyCoupon(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to apply coupon",
				slog.String("userId", claims.UserID.String()),
				slog.String("code", req.Code),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Coupon applied",
			slog.String("userId", claims.UserID.String()),
			slog.String("code", req.Code))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		code := r.PathValue("code")
		if code == "" {
			response.Error(w, errors.BadRequestError("Coupon code is required"))
			return
		}

		cart, err := h.cartService.RemoveCoupon(r.Context(), claims.UserID, code)
		if err != nil {
			slog.Error("Failed to remove coupon",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) SetShippingOption() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.ShippingOption
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.SetShippingOption(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to set shipping option",
				slog.String("userId", claims.UserID.String()),
				slog.String("optionId", req.ID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) SetGiftOptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.GiftOptionsRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithError(err))
			return
		}

		cart, err := h.cartService.SetGiftOptions(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to set gift options",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
