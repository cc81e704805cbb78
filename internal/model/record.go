// Package model defines the records and view models served by the dashboard.
package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by the store when no record matches a lookup.
var ErrNotFound = errors.New("record not found")

// Record is a magic number persisted in the magicnumbers table.
type Record struct {
	TxID        string           `json:"txid"`
	MagicNumber string           `json:"magicnumber"`
	Value       uint64           `json:"value"`
	CreatedAt   int64            `json:"created_at"`
	Mined       bool             `json:"mined"`
	MinedAt     *int64           `json:"mined_at,omitempty"`
	MinedBSVUSD *decimal.Decimal `json:"mined_bsvusd,omitempty"`
	MinedNumber *string          `json:"mined_number"`
	Emoji       *string          `json:"emoji"`
	Target      *string          `json:"target,omitempty"`
}

// Valuation is the projection of a mined record used for earnings totals.
type Valuation struct {
	Value       uint64
	MinedBSVUSD *decimal.Decimal
}

// TimelineRecord is the projection of a record used for the block visualization.
type TimelineRecord struct {
	TxID        string
	MagicNumber string
	CreatedAt   int64
	Mined       bool
}
