package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DonationFrequency string

const (
	FrequencyOneTime   DonationFrequency = "one_time"
	FrequencyMonthly   DonationFrequency = "monthly"
	FrequencyQuarterly DonationFrequency = "quarterly"
	FrequencyAnnually  DonationFrequency = "annually"
)

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
	DonationRefunded  DonationStatus = "refunded"
)

// Receipt is issued at most once per donation and never regenerated.
type Receipt struct {
	ID       uuid.UUID `json:"id"`
	IssuedAt time.Time `json:"issued_at"`
	URL      string    `json:"url"`
	Details  string    `json:"details,omitempty"`
}

type ImpactMetric struct {
	Metric     string    `json:"metric"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
	Details    string    `json:"details,omitempty"`
}

type Donation struct {
	ID        uuid.UUID         `json:"id"`
	DonorID   uuid.UUID         `json:"donor_id"`
	ProjectID uuid.UUID         `json:"project_id,omitempty"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency"`
	Frequency DonationFrequency `json:"frequency"`
	Status    DonationStatus    `json:"status"`
	Message   string            `json:"message,omitempty"`
	Anonymous bool              `json:"anonymous"`
	Receipt   *Receipt          `json:"receipt,omitempty"`
	Impact    []ImpactMetric    `json:"impact,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DonationStats aggregates across every recorded donation.
type DonationStats struct {
	TotalAmount    decimal.Decimal           `json:"total_amount"`
	TotalDonors    int                       `json:"total_donors"`
	TotalDonations int                       `json:"total_donations"`
	ByFrequency    map[DonationFrequency]int `json:"by_frequency"`
}

type CreateDonationRequest struct {
	ProjectID uuid.UUID         `json:"project_id"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency" validate:"required,len=3"`
	Frequency DonationFrequency `json:"frequency" validate:"required,oneof=one_time monthly quarterly annually"`
	Message   string            `json:"message" validate:"omitempty,max=500"`
	Anonymous bool              `json:"anonymous"`
}

type RecordImpactRequest struct {
	Metric  string  `json:"metric" validate:"required"`
	Value   float64 `json:"value" validate:"required"`
	Details string  `json:"details" validate:"omitempty,max=500"`
}
