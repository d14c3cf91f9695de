package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/Stakenborg/poe2-investments"
)

// CapTableMarkdown renders every investor's position at the current price.
func CapTableMarkdown(f *fund.Fund) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	price := f.Price()
	doc.H1("Cap Table")
	doc.PlainText(fmt.Sprintf("Unit price %s, %s units outstanding.", price, f.TotalUnits))

	rows := make([][]string, 0, len(f.Investors))
	for _, pos := range f.CapTable(price) {
		name := pos.Name
		if pos.Manager {
			name += " (manager)"
		}
		change := "n/a"
		if pos.PctChange != nil {
			change = pos.PctChange.String() + "%"
		}
		note := ""
		if pos.Pending != nil {
			note = string(pos.Pending.Kind) + " pending"
		}
		rows = append(rows, []string{
			name,
			pos.Units.String(),
			pos.Value.String(),
			pct(pos.Share),
			pos.Deposited.String(),
			signed(pos.Profit),
			change,
			note,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Investor", "Units", "Value", "Share", "Deposited", "Profit", "Change", "Note"},
		Rows:   rows,
	})

	return doc.String()
}
