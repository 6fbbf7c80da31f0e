package models

import (
	"time"

	"github.com/google/uuid"
)

type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

// Tier thresholds, lowest first. A tier is earned when the balance reaches
// its threshold.
var tierLadder = []struct {
	Tier      LoyaltyTier
	Threshold int
}{
	{TierBronze, 0},
	{TierSilver, 200},
	{TierGold, 500},
	{TierPlatinum, 1000},
}

// TierForPoints returns the highest tier whose threshold is <= points.
func TierForPoints(points int) LoyaltyTier {

	tier := TierBronze

	for _, rung := range tierLadder {
		if points >= rung.Threshold {
			tier = rung.Tier
		}
	}

	return tier
}

type Redemption struct {
	Points     int       `json:"points"`
	Reward     string    `json:"reward"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

type LoyaltyProgram struct {
	UserID      uuid.UUID    `json:"user_id"`
	Points      int          `json:"points"`
	Tier        LoyaltyTier  `json:"tier"`
	Redemptions []Redemption `json:"redemptions,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Recalculate rederives the tier from the balance. Tier is a pure function of
// points and is never trusted as stored.
func (p *LoyaltyProgram) Recalculate() {
	p.Tier = TierForPoints(p.Points)
}

type TierProgress struct {
	CurrentTier  LoyaltyTier `json:"current_tier"`
	NextTier     LoyaltyTier `json:"next_tier"`
	PointsNeeded int         `json:"points_needed"`
}

// TierProgress reports the next tier and the points still needed to reach it.
// Platinum has no next tier and needs 0 points.
func (p *LoyaltyProgram) TierProgress() TierProgress {

	current := TierForPoints(p.Points)

	for i, rung := range tierLadder {
		if rung.Tier != current {
			continue
		}

		if i == len(tierLadder)-1 {
			return TierProgress{CurrentTier: current, NextTier: current, PointsNeeded: 0}
		}

		next := tierLadder[i+1]

		return TierProgress{
			CurrentTier:  current,
			NextTier:     next.Tier,
			PointsNeeded: max(next.Threshold-p.Points, 0),
		}
	}

	return TierProgress{CurrentTier: TierBronze, NextTier: TierSilver, PointsNeeded: 200}
}

type UpdatePointsRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type RedeemPointsRequest struct {
	Points int    `json:"points" validate:"required,gt=0"`
	Reward string `json:"reward" validate:"required"`
}

type TransferPointsRequest struct {
	TargetUserID uuid.UUID `json:"target_user_id" validate:"required"`
	Points       int       `json:"points" validate:"required,gt=0"`
}
