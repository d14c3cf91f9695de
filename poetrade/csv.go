package poetrade

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportCSV writes trades as a spreadsheet-friendly ledger, header included.
func ExportCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	header := []string{"timestamp", "item_name", "base_type", "rarity", "ilvl", "corrupted", "price", "currency", "div_equivalent", "item_id"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write csv: %w", err)
	}
	for _, t := range trades {
		row := []string{
			t.Timestamp,
			t.ItemName,
			t.BaseType,
			t.Rarity,
			strconv.Itoa(t.ItemLevel),
			strconv.FormatBool(t.Corrupted),
			t.Price.String(),
			t.Currency,
			t.DivEquivalent.String(),
			t.ItemID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
