package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/Stakenborg/poe2-investments"
)

// HistoryMarkdown renders an investor's transaction history, oldest first.
func HistoryMarkdown(inv *fund.Investor) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", inv.Name))
	if len(inv.History) == 0 {
		doc.PlainText("No transactions yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(inv.History))
	for _, tx := range inv.History {
		original := ""
		if tx.Original != nil {
			original = fmt.Sprintf("%s %s", tx.Original.Decimal(), tx.Currency)
		}
		rows = append(rows, []string{
			tx.Date.String(),
			string(tx.Kind),
			tx.Amount.String(),
			tx.UnitPrice.String(),
			original,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Type", "Amount (div)", "Locked price", "As requested"},
		Rows:   rows,
	})

	if inv.Pending != nil {
		doc.H2("Pending")
		doc.PlainText(inv.Pending.String())
	}

	return doc.String()
}

// FulfillmentMarkdown renders the outcome of a fulfillment run.
func FulfillmentMarkdown(results []*fund.FulfillResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Fulfilled Requests")
	if len(results) == 0 {
		doc.PlainText("Nothing pending.")
		return doc.String()
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Investor.Name,
			string(r.Request.Kind),
			r.Request.Amount.String(),
			r.Request.LockedPrice.String(),
			r.UnitsDelta.String(),
			r.Fee.String(),
			r.Net.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Investor", "Type", "Amount", "Locked price", "Units", "Fee", "Net"},
		Rows:   rows,
	})

	return doc.String()
}
