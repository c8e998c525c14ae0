package models

// -----------------------------------------------------------------------------
// Risk check payloads
// -----------------------------------------------------------------------------

// MRiskCheckResult is returned by the check-position-risk and check-order-risk
// endpoints.
type MRiskCheckResult struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// -----------------------------------------------------------------------------

// MOrderData describes an order submitted for a pre-trade risk check.
type MOrderData struct {
	OrderID string  `json:"order_id"`
	Symbol  string  `json:"symbol"`
	Type    string  `json:"type"`
	Side    string  `json:"side"`
	Price   float64 `json:"price,omitempty"`
	Size    float64 `json:"size"`
	Status  string  `json:"status,omitempty"`
}

// -----------------------------------------------------------------------------

// MOrderRiskQuery pairs an order with the account it would execute under.
type MOrderRiskQuery struct {
	AccountID int64      `json:"account_id"`
	Order     MOrderData `json:"order"`
}

// MPositionRiskQuery asks whether a prospective position passes risk checks.
type MPositionRiskQuery struct {
	AccountID  int64   `json:"account_id"`
	Symbol     string  `json:"symbol"`
	Size       float64 `json:"size"`
	EntryPrice float64 `json:"entry_price"`
	Leverage   float64 `json:"leverage"`
}
