package fund

import (
	"context"
	"time"
)

// Valuation is a point-in-time market read: what the fund's active listings
// would fetch and what each game currency is worth in divines. The liquid
// side of NAV is derived by pricing the fund's own balances at these rates.
type Valuation struct {
	ListedValue Amount
	Rates       Rates
	At          time.Time
}

// ValuationSource supplies market valuations. The single read is treated as
// a consistent point-in-time snapshot; the core never mixes numbers from
// two different reads.
type ValuationSource interface {
	Read(ctx context.Context) (Valuation, error)
}

// ApplyValuation records a fresh market read on the fund. Commands that run
// without a source keep the previous valuation and report its age instead
// of silently passing stale numbers off as current.
func (f *Fund) ApplyValuation(v Valuation) {
	f.ListedValue = v.ListedValue
	if v.Rates != nil {
		f.Rates = v.Rates
	}
	if v.At.IsZero() {
		f.ValuedAt = time.Now()
	} else {
		f.ValuedAt = v.At
	}
}
