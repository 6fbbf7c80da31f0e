package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentGateway string

const (
	GatewayCreditCard PaymentGateway = "credit_card"
	GatewayPayPal     PaymentGateway = "paypal"
	GatewayStripe     PaymentGateway = "stripe"
)

type PaymentMethod struct {
	ID         uuid.UUID      `json:"id"`
	Gateway    PaymentGateway `json:"gateway"`
	GatewayRef string         `json:"gateway_ref,omitempty"`
	Last4      string         `json:"last4,omitempty"`
	Brand      string         `json:"brand,omitempty"`
	ExpiryDate string         `json:"expiry_date,omitempty"`
	IsDefault  bool           `json:"is_default"`
	AddedAt    time.Time      `json:"added_at"`
}

// PaymentMethodSet holds a user's saved methods plus the method currently
// selected for checkout. The selection is set only by an explicit select and
// is distinct from the default flag; removing the selected method clears the
// selection without promoting another method.
type PaymentMethodSet struct {
	UserID     uuid.UUID       `json:"user_id"`
	Methods    []PaymentMethod `json:"methods"`
	SelectedID uuid.UUID       `json:"selected_id,omitempty"`
}

func (s *PaymentMethodSet) Find(id uuid.UUID) *PaymentMethod {

	for i := range s.Methods {
		if s.Methods[i].ID == id {
			return &s.Methods[i]
		}
	}

	return nil
}

// Add appends the method. The first method a user saves becomes the default;
// the selection is never touched.
func (s *PaymentMethodSet) Add(method PaymentMethod) {

	if len(s.Methods) == 0 {
		method.IsDefault = true
	}

	s.Methods = append(s.Methods, method)
}

// Remove drops the method by id and reports whether it existed. When the
// removed method was selected, the selection is cleared. No other method is
// promoted.
func (s *PaymentMethodSet) Remove(id uuid.UUID) bool {

	for i := range s.Methods {
		if s.Methods[i].ID != id {
			continue
		}

		s.Methods = append(s.Methods[:i], s.Methods[i+1:]...)

		if s.SelectedID == id {
			s.SelectedID = uuid.Nil
		}

		return true
	}

	return false
}

// SetDefault marks the method as the default and demotes every other method
// in the same pass. The checkout selection is left alone. Reports whether the
// method existed.
func (s *PaymentMethodSet) SetDefault(id uuid.UUID) bool {

	if s.Find(id) == nil {
		return false
	}

	for i := range s.Methods {
		s.Methods[i].IsDefault = s.Methods[i].ID == id
	}

	return true
}

// Selected returns the method currently chosen for checkout, or nil when no
// method is selected.
func (s *PaymentMethodSet) Selected() *PaymentMethod {

	if s.SelectedID == uuid.Nil {
		return nil
	}

	return s.Find(s.SelectedID)
}

type AddPaymentMethodRequest struct {
	Gateway    PaymentGateway `json:"gateway" validate:"required,oneof=credit_card paypal stripe"`
	Token      string         `json:"token" validate:"required"`
	Last4      string         `json:"last4" validate:"omitempty,len=4,numeric"`
	Brand      string         `json:"brand" validate:"omitempty"`
	ExpiryDate string         `json:"expiry_date" validate:"omitempty"`
}

type ProcessPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,len=3"`
	OrderID  string          `json:"order_id" validate:"omitempty"`
}

type PaymentResult struct {
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	MethodID      uuid.UUID       `json:"method_id"`
	ProcessedAt   time.Time       `json:"processed_at"`
}
