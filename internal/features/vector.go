// Package features builds the input vector consumed by the pre-trained
// classifier ensemble.
package features

import "StockGenie/internal/model"

// Size is the vector length expected by every downstream model.
const Size = 4

// ColumnNames documents the pinned positional order. The classifiers were
// trained on exactly this order and there is no versioning on the wire:
// reordering here corrupts predictions without any error being raised.
var ColumnNames = [Size]string{"Close", "SMA_30", "RSI", "Price_Change_Pct"}

// Vector maps one row to the classifier input order.
func Vector(row model.Row) [Size]float64 {
	return [Size]float64{row.Close, row.SMA30, row.RSI, row.PriceChangePct}
}

// Latest returns the feature vector of a series' most recent row.
func Latest(s model.Series) ([Size]float64, bool) {
	row, ok := s.Latest()
	if !ok {
		return [Size]float64{}, false
	}
	return Vector(row), true
}
