package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Wishlist struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Items     []string  `json:"items"`
	Shared    bool      `json:"shared"`
	ShareURL  string    `json:"share_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Contains reports whether the product is already in the list.
func (w *Wishlist) Contains(productID string) bool {
	return slices.Contains(w.Items, productID)
}

// AddItem appends the product with set semantics; adding an existing product
// is a no-op.
func (w *Wishlist) AddItem(productID string) {
	if !w.Contains(productID) {
		w.Items = append(w.Items, productID)
	}
}

// RemoveItem drops the product; removing an absent product is a no-op.
func (w *Wishlist) RemoveItem(productID string) {
	w.Items = slices.DeleteFunc(w.Items, func(id string) bool {
		return id == productID
	})
}

// WishlistCollection holds every wishlist owned by one user. The first list is
// the implicit default target when an operation omits a wishlist id.
type WishlistCollection struct {
	UserID    uuid.UUID   `json:"user_id"`
	Wishlists []*Wishlist `json:"wishlists"`
}

func (c *WishlistCollection) FindByID(id uuid.UUID) *Wishlist {

	for _, wishlist := range c.Wishlists {
		if wishlist.ID == id {
			return wishlist
		}
	}

	return nil
}

func (c *WishlistCollection) Default() *Wishlist {

	if len(c.Wishlists) == 0 {
		return nil
	}

	return c.Wishlists[0]
}

type CreateWishlistRequest struct {
	Shared bool `json:"shared"`
}

type WishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type MergeWishlistsRequest struct {
	SourceID uuid.UUID `json:"source_id" validate:"required"`
}
