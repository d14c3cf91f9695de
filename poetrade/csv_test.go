package poetrade

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExportCSV(t *testing.T) {
	trades := []Trade{
		{
			ItemID:        "a",
			Timestamp:     "2026-08-27T10:00:00Z",
			ItemName:      "Headhunter",
			BaseType:      "Heavy Belt",
			Rarity:        "Unique",
			ItemLevel:     84,
			Corrupted:     true,
			Price:         decimal.NewFromInt(3),
			Currency:      "divine",
			DivEquivalent: decimal.NewFromInt(3),
		},
		{
			ItemID:    "b",
			Timestamp: "2026-08-27T11:00:00Z",
			ItemName:  "Stellar Amulet",
			Rarity:    "Rare",
			ItemLevel: 80,
			Price:     decimal.NewFromInt(2),
			Currency:  "mirror",
		},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, trades); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("cannot read back csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header plus 2", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][9] != "item_id" {
		t.Errorf("header = %v", rows[0])
	}
	want := []string{"2026-08-27T10:00:00Z", "Headhunter", "Heavy Belt", "Unique", "84", "true", "3", "divine", "3", "a"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Errorf("row[1][%d] = %q, want %q", i, rows[1][i], cell)
		}
	}
	if rows[2][8] != "0" {
		t.Errorf("unrated div_equivalent = %q, want 0", rows[2][8])
	}
}
