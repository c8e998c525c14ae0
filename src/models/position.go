package models

import "time"

// -----------------------------------------------------------------------------
// Position (matches backend PositionInDB)
// -----------------------------------------------------------------------------

type MPosition struct {
	ID               int64     `json:"id"`
	AccountID        int64     `json:"account_id"`
	Symbol           string    `json:"symbol"`
	PositionSide     string    `json:"position_side,omitempty"` // LONG/SHORT/NET
	Size             float64   `json:"size"`
	EntryPrice       float64   `json:"entry_price"`
	Leverage         float64   `json:"leverage"`
	CurrentPrice     float64   `json:"current_price,omitempty"`
	UnrealizedPnl    float64   `json:"unrealized_pnl,omitempty"`
	RiskLevel        RiskLevel `json:"risk_level,omitempty"`
	LiquidationPrice float64   `json:"liquidation_price,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}

// -----------------------------------------------------------------------------

// MPositionCreate is the payload for opening a new position.
type MPositionCreate struct {
	AccountID    int64   `json:"account_id"`
	Symbol       string  `json:"symbol"`
	PositionSide string  `json:"position_side,omitempty"`
	Size         float64 `json:"size"`
	EntryPrice   float64 `json:"entry_price"`
	Leverage     float64 `json:"leverage"`
}

// -----------------------------------------------------------------------------
// Position Delta
// -----------------------------------------------------------------------------

// MPositionDelta is a partial, single-record position update. Nil fields are
// "not supplied" and must not overwrite existing values on merge. It serves
// both as the PATCH request payload and as the decoded position_update push
// payload, which always names the record by ID.
type MPositionDelta struct {
	ID               int64      `json:"id"`
	AccountID        *int64     `json:"account_id,omitempty"`
	Symbol           *string    `json:"symbol,omitempty"`
	PositionSide     *string    `json:"position_side,omitempty"`
	Size             *float64   `json:"size,omitempty"`
	EntryPrice       *float64   `json:"entry_price,omitempty"`
	Leverage         *float64   `json:"leverage,omitempty"`
	CurrentPrice     *float64   `json:"current_price,omitempty"`
	UnrealizedPnl    *float64   `json:"unrealized_pnl,omitempty"`
	RiskLevel        *RiskLevel `json:"risk_level,omitempty"`
	LiquidationPrice *float64   `json:"liquidation_price,omitempty"`
	IsActive         *bool      `json:"is_active,omitempty"`
}

// -----------------------------------------------------------------------------

// ApplyTo merges the delta into a position record, field by field. Unsupplied
// fields keep their current values.
func (d *MPositionDelta) ApplyTo(p *MPosition) {
	if d.AccountID != nil {
		p.AccountID = *d.AccountID
	}
	if d.Symbol != nil {
		p.Symbol = *d.Symbol
	}
	if d.PositionSide != nil {
		p.PositionSide = *d.PositionSide
	}
	if d.Size != nil {
		p.Size = *d.Size
	}
	if d.EntryPrice != nil {
		p.EntryPrice = *d.EntryPrice
	}
	if d.Leverage != nil {
		p.Leverage = *d.Leverage
	}
	if d.CurrentPrice != nil {
		p.CurrentPrice = *d.CurrentPrice
	}
	if d.UnrealizedPnl != nil {
		p.UnrealizedPnl = *d.UnrealizedPnl
	}
	if d.RiskLevel != nil {
		p.RiskLevel = *d.RiskLevel
	}
	if d.LiquidationPrice != nil {
		p.LiquidationPrice = *d.LiquidationPrice
	}
	if d.IsActive != nil {
		p.IsActive = *d.IsActive
	}
}

// -----------------------------------------------------------------------------

// Materialize builds a fresh position record from the delta alone, used when
// a delta arrives for a record the store has never seen.
func (d *MPositionDelta) Materialize() MPosition {
	p := MPosition{ID: d.ID}
	d.ApplyTo(&p)
	return p
}
