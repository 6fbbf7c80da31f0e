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

type WishlistHandler struct {
	wishlistService *service.WishlistService
	validator       *validator.Validate
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator.New(),
	}
}

func (h *WishlistHandler) ListWishlists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		collection, err := h.wishlistService.ListWishlists(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("Failed to list wishlists",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, collection)
	}
}

func (h *WishlistHandler) CreateWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		var req models.CreateWishlistRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			// an empty body creates a private list
			req = models.CreateWishlistRequest{}
		}

		wishlist, err := h.wishlistService.CreateWishlist(r.Context(), claims.UserID, &req)
		if err != nil {
			slog.Error("Failed to create wishlist",
				slog.String("userId", claims.UserID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Wishlist created",
			slog.String("userId", claims.UserID.String()),
			slog.String("wishlistId", wishlist.ID.String()))
		response.Success(w, http.StatusCreated, wishlist)
	}
}

// AddItem accepts the literal id "default" to target the user's first list,
// creating one when none exists.
func (h *WishlistHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		wishlistID, ok := wishlistIDFromPath(w, r)
		if !ok {
			return
		}

		var req models.WishlistItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		wishlist, err := h.wishlistService.AddItem(r.Context(), claims.UserID, wishlistID, &req)
		if err != nil {
			slog.Error("Failed to add wishlist item",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

func (h *WishlistHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		wishlistID, ok := wishlistIDFromPath(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("productId")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))
			return
		}

		wishlist, err := h.wishlistService.RemoveItem(r.Context(), claims.UserID, wishlistID, productID)
		if err != nil {
			slog.Error("Failed to remove wishlist item",
				slog.String("userId", claims.UserID.String()),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

func (h *WishlistHandler) ShareWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		wishlistID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid wishlist ID"))
			return
		}

		wishlist, err := h.wishlistService.ShareWishlist(r.Context(), claims.UserID, wishlistID)
		if err != nil {
			slog.Error("Failed to share wishlist",
				slog.String("userId", claims.UserID.String()),
				slog.String("wishlistId", wishlistID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		slog.Info("Wishlist shared",
			slog.String("userId", claims.UserID.String()),
			slog.String("wishlistId", wishlistID.String()))
		response.Success(w, http.StatusOK, wishlist)
	}
}

func (h *WishlistHandler) MergeWishlists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		targetID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid wishlist ID"))
			return
		}

		var req models.MergeWishlistsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		wishlist, err := h.wishlistService.MergeWishlists(r.Context(), claims.UserID, targetID, &req)
		if err != nil {
			slog.Error("Failed to merge wishlists",
				slog.String("userId", claims.UserID.String()),
				slog.String("targetId", targetID.String()),
				slog.String("sourceId", req.SourceID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

func (h *WishlistHandler) ClearWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		claims, ok := claimsFromRequest(w, r)
		if !ok {
			return
		}

		wishlistID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid wishlist ID"))
			return
		}

		wishlist, err := h.wishlistService.ClearWishlist(r.Context(), claims.UserID, wishlistID)
		if err != nil {
			slog.Error("Failed to clear wishlist",
				slog.String("userId", claims.UserID.String()),
				slog.String("wishlistId", wishlistID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, wishlist)
	}
}

func wishlistIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {

	raw := r.PathValue("id")

	if raw == "" || raw == "default" {
		return uuid.Nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid wishlist ID"))
		return uuid.Nil, false
	}

	return id, true
}
