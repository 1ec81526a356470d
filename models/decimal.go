package models

import "github.com/shopspring/decimal"

func init() {
	// Decimals go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}
