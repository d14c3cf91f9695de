package renderer

import (
	"bytes"
	"fmt"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/Stakenborg/poe2-investments"
)

// SummaryMarkdown renders the fund overview report.
func SummaryMarkdown(f *fund.Fund) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	price := f.Price()
	doc.H1("Fund Summary")
	doc.PlainText(fmt.Sprintf("Total NAV: %s at %s/unit", f.NAV(), price))

	doc.H2("Valuation")
	valued := "never"
	if !f.ValuedAt.IsZero() {
		valued = f.ValuedAt.UTC().Format(time.RFC3339)
	}
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Liquid", f.Liquid().String()},
			{"Listed (face)", f.ListedValue.String()},
			{"Haircut", pct(f.Haircut)},
			{"NAV", f.NAV().String()},
			{"Units outstanding", f.TotalUnits.String()},
			{"Unit price", price.String()},
			{"High-water mark", f.HighWaterMark.String()},
			{"Valued at", valued},
		},
	})

	doc.H2("Holdings")
	rows := make([][]string, 0, len(f.Balances))
	for _, c := range sortedCurrencies(f.Balances) {
		rows = append(rows, []string{c, f.Balances[c].String()})
	}
	doc.Table(md.TableSet{Header: []string{"Currency", "Quantity"}, Rows: rows})

	doc.H2("Investors")
	doc.PlainText(fmt.Sprintf("%d investor(s), %s deposited, %s profit to date.",
		len(f.Investors), f.TotalDeposited(), signed(f.TotalProfit(price))))

	pending := 0
	for _, inv := range f.Investors {
		if inv.Pending != nil {
			pending++
		}
	}
	if pending > 0 {
		doc.PlainText(fmt.Sprintf("%d request(s) awaiting fulfillment.", pending))
	}

	return doc.String()
}
