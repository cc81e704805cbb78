package model

import "github.com/shopspring/decimal"

// DisplayRecord is a Record with the computed fields rendered by pages and the API.
type DisplayRecord struct {
	Record

	DisplayValue       string `json:"display_value"`
	DisplayDate        string `json:"display_date"`
	DisplayMinedDate   string `json:"display_mined_date"`
	DisplayMagicNumber string `json:"display_magicnumber"`

	// MinedIn is set only for mined records.
	MinedIn *string `json:"mined_in,omitempty"`
	// Power is set only when the record carries a mined number.
	Power *int `json:"power,omitempty"`

	USD    string `json:"-"`
	Type   string `json:"-"`
	Header string `json:"-"`
}

// Dashboard holds the summary counters shown on every page.
type Dashboard struct {
	MinedNum        string `json:"mined_num"`
	MinedEarnings   string `json:"mined_earnings"`
	UnminedNum      string `json:"unmined_num"`
	UnminedEarnings string `json:"unmined_earnings"`
}

// BlockvizEntry is the lightweight shape of a record inside a timeline bucket.
type BlockvizEntry struct {
	Mined bool   `json:"mined"`
	Power int    `json:"power"`
	TxID  string `json:"txid"`
}

// Page is the request-scoped view model composed by the view assemblers.
type Page struct {
	BSVUSD    decimal.Decimal   `json:"bsvusd"`
	Dashboard *Dashboard        `json:"dashboard,omitempty"`
	Mined     []DisplayRecord   `json:"mined,omitempty"`
	Unmined   []DisplayRecord   `json:"unmined,omitempty"`
	Records   []DisplayRecord   `json:"records,omitempty"`
	Blockviz  [][]BlockvizEntry `json:"blockviz,omitempty"`
}

// NewPage starts a view model priced at rate.
func NewPage(rate decimal.Decimal) *Page {
	return &Page{BSVUSD: rate}
}

// Detail is the view model of a single record page.
type Detail struct {
	BSVUSD decimal.Decimal `json:"bsvusd"`
	Record DisplayRecord   `json:"record"`
	Txs    []DisplayRecord `json:"txs,omitempty"`
	Power  float64         `json:"power"`
}

// HashView is the view model of a hash that has no matching record yet.
type HashView struct {
	BSVUSD         decimal.Decimal `json:"bsvusd"`
	Hash           string          `json:"hash"`
	Txs            []DisplayRecord `json:"txs"`
	AggregatePower float64         `json:"aggregatepower"`
	Type           string          `json:"-"`
	Header         string          `json:"-"`
}
