package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kwatiwellness/commerce-platform/internal/command"
	"github.com/kwatiwellness/commerce-platform/internal/config"
	"github.com/kwatiwellness/commerce-platform/internal/errors"
	"github.com/kwatiwellness/commerce-platform/internal/models"
	repository "github.com/kwatiwellness/commerce-platform/internal/repositories"
)

type WishlistService struct {
	repo         repository.WishlistRepository
	shareBaseURL string
	runner       *command.Runner
}

func NewWishlistService(repo repository.WishlistRepository, cfg *config.Config) *WishlistService {
	return &WishlistService{
		repo:         repo,
		shareBaseURL: cfg.Pricing.ShareBaseURL,
		runner:       command.NewRunner(),
	}
}

func (s *WishlistService) Status() command.Status {
	return s.runner.Status()
}

func (s *WishlistService) ListWishlists(ctx context.Context, userID uuid.UUID) (*models.WishlistCollection, error) {
	return s.load(ctx, userID)
}

func (s *WishlistService) CreateWishlist(ctx context.Context, userID uuid.UUID, req *models.CreateWishlistRequest) (*models.Wishlist, error) {

	collection, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist := &models.Wishlist{
		ID:        uuid.New(),
		UserID:    userID,
		Items:     []string{},
		Shared:    req.Shared,
		CreatedAt: time.Now(),
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		collection.Wishlists = append(collection.Wishlists, wishlist)
		return s.persist(ctx, collection)
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// AddItem puts the product on the chosen list with set semantics; a product
// already on the list stays a single entry. A nil wishlist id targets the
// user's first list, and a user with no lists gets one created on the spot.
func (s *WishlistService) AddItem(ctx context.Context, userID uuid.UUID, wishlistID uuid.UUID, req *models.WishlistItemRequest) (*models.Wishlist, error) {

	collection, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var wishlist *models.Wishlist

	if wishlistID == uuid.Nil {

		wishlist = collection.Default()

		if wishlist == nil {
			wishlist = &models.Wishlist{
				ID:        uuid.New(),
				UserID:    userID,
				Items:     []string{},
				CreatedAt: time.Now(),
			}
			collection.Wishlists = append(collection.Wishlists, wishlist)
		}

	} else {

		wishlist = collection.FindByID(wishlistID)

		if wishlist == nil {
			return nil, errors.NotFoundError("Wishlist not found")
		}
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		wishlist.AddItem(req.ProductID)
		return s.persist(ctx, collection)
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// RemoveItem drops the product from the list. A nil wishlist id targets the
// user's first list, mirroring AddItem. Removing an absent product is a no-op.
func (s *WishlistService) RemoveItem(ctx context.Context, userID uuid.UUID, wishlistID uuid.UUID, productID string) (*models.Wishlist, error) {

	collection, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	var wishlist *models.Wishlist

	if wishlistID == uuid.Nil {
		wishlist = collection.Default()
	} else {
		wishlist = collection.FindByID(wishlistID)
	}

	if wishlist == nil {
		return nil, errors.NotFoundError("Wishlist not found")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		wishlist.RemoveItem(productID)
		return s.persist(ctx, collection)
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// ShareWishlist marks the list shared and assigns its public URL. Sharing an
// already shared list refreshes nothing and returns the same URL.
func (s *WishlistService) ShareWishlist(ctx context.Context, userID uuid.UUID, wishlistID uuid.UUID) (*models.Wishlist, error) {

	collection, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist := collection.FindByID(wishlistID)
	if wishlist == nil {
		return nil, errors.NotFoundError("Wishlist not found")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		wishlist.Shared = true

		if wishlist.ShareURL == "" {
			wishlist.ShareURL = fmt.Sprintf("%s/wishlists/%s", s.shareBaseURL, wishlist.ID)
		}

		return s.persist(ctx, collection)
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// MergeWishlists unions the source list's items into the target. The source
// list is left untouched.
func (s *WishlistService) MergeWishlists(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, req *models.MergeWishlistsRequest) (*models.Wishlist, error) {

	collection, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := collection.FindByID(targetID)
	if target == nil {
		return nil, errors.NotFoundError("Target wishlist not found")
	}

	source := collection.FindByID(req.SourceID)
	if source == nil {
		return nil, errors.NotFoundError("Source wishlist not found")
	}

	if target.ID == source.ID {
		return nil, errors.BadRequestError("Cannot merge a wishlist into itself")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {

		for _, productID := range source.Items {
			target.AddItem(productID)
		}

		return s.persist(ctx, collection)
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// ClearWishlist empties the list but keeps the list itself.
func (s *WishlistService) ClearWishlist(ctx context.Context, userID uuid.UUID, wishlistID uuid.UUID) (*models.Wishlist, error) {

	collection, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist := collection.FindByID(wishlistID)
	if wishlist == nil {
		return nil, errors.NotFoundError("Wishlist not found")
	}

	err = s.runner.Execute(ctx, func(ctx context.Context) error {
		wishlist.Items = []string{}
		return s.persist(ctx, collection)
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

func (s *WishlistService) load(ctx context.Context, userID uuid.UUID) (*models.WishlistCollection, error) {

	collection, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load wishlists").WithError(err)
	}

	if collection == nil {
		collection = &models.WishlistCollection{UserID: userID}
	}

	return collection, nil
}

func (s *WishlistService) persist(ctx context.Context, collection *models.WishlistCollection) error {

	if err := s.repo.Save(ctx, collection); err != nil {
		return errors.DatabaseError("Failed to update wishlists").WithError(err)
	}

	return nil
}
