package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"dexboard/backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// PortfolioValuation is the total value of a set of wallets and its 24h move
type PortfolioValuation struct {
	TotalValue       float64 `json:"totalValue"`
	Change24h        float64 `json:"change24h"`
	Change24hPercent float64 `json:"change24hPercent"`
}

// MergedAsset is one symbol summed across every wallet holding it
type MergedAsset struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Balance   float64  `json:"balance"`
	Price     float64  `json:"price"`
	Value     float64  `json:"value"`
	Change24h float64  `json:"change24h"`
	Logo      *string  `json:"logo"`
	Wallets   []string `json:"wallets"`
}

// Valuate sums asset values and their absolute 24h change.
// The percent is relative to the reconstructed prior value (value - change) and is 0 when that is zero.
func Valuate(wallets []model.Wallet) PortfolioValuation {
	total := decimal.Zero
	change := decimal.Zero

	for _, w := range wallets {
		for _, a := range w.Assets {
			value := decimal.NewFromFloat(a.Value)
			total = total.Add(value)
			change = change.Add(value.Mul(decimal.NewFromFloat(a.Change24h)).Div(hundred))
		}
	}

	percent := decimal.Zero
	if prior := total.Sub(change); !prior.IsZero() {
		percent = change.Div(prior).Mul(hundred)
	}

	return PortfolioValuation{
		TotalValue:       total.InexactFloat64(),
		Change24h:        change.InexactFloat64(),
		Change24hPercent: percent.InexactFloat64(),
	}
}

// MergeAssets merges assets sharing a symbol across wallets.
// Balance and value are summed; price, name, change and logo come from the first wallet seen.
// The result is sorted by value descending, ties keep first-seen order.
func MergeAssets(wallets []model.Wallet) []MergedAsset {
	type acc struct {
		asset   MergedAsset
		balance decimal.Decimal
		value   decimal.Decimal
	}

	order := make([]string, 0)
	bySymbol := make(map[string]*acc)

	for _, w := range wallets {
		for _, a := range w.Assets {
			entry, ok := bySymbol[a.Symbol]
			if !ok {
				entry = &acc{
					asset: MergedAsset{
						Symbol:    a.Symbol,
						Name:      a.Name,
						Price:     a.Price,
						Change24h: a.Change24h,
						Logo:      a.Logo,
						Wallets:   make([]string, 0, 1),
					},
				}
				bySymbol[a.Symbol] = entry
				order = append(order, a.Symbol)
			}
			entry.balance = entry.balance.Add(decimal.NewFromFloat(a.Balance))
			entry.value = entry.value.Add(decimal.NewFromFloat(a.Value))
			entry.asset.Wallets = appendUnique(entry.asset.Wallets, w.Name)
		}
	}

	out := make([]MergedAsset, 0, len(order))
	for _, symbol := range order {
		entry := bySymbol[symbol]
		entry.asset.Balance = entry.balance.InexactFloat64()
		entry.asset.Value = entry.value.InexactFloat64()
		out = append(out, entry.asset)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// CountAssets returns the number of asset rows across wallets
func CountAssets(wallets []model.Wallet) int {
	n := 0
	for _, w := range wallets {
		n += len(w.Assets)
	}
	return n
}

// WalletValue sums the value of one wallet's assets
func WalletValue(w model.Wallet) float64 {
	total := decimal.Zero
	for _, a := range w.Assets {
		total = total.Add(decimal.NewFromFloat(a.Value))
	}
	return total.InexactFloat64()
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
