package performance

import (
	"time"

	"github.com/lzhao/talos/internal/contracts"
	"github.com/lzhao/talos/internal/marketdata"
)

// TradeRecord is one completed entry/exit pair, derived from the
// signal series after the fact. Never mutated once built.
type TradeRecord struct {
	EntryDate  time.Time `json:"entry_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitDate   time.Time `json:"exit_date"`
	ExitPrice  float64   `json:"exit_price"`
	ReturnPct  float64   `json:"return_pct"`
	Win        bool      `json:"win"`
}

// PairTrades pairs buy and sell triggers into completed trades.
//
// The scan walks the nonzero-signal subsequence in chronological
// order: a buy whose next nonzero neighbor is a sell forms a pair and
// the scan advances past both; otherwise it advances by one. A
// trailing buy with no later sell stays unpaired and is dropped.
func PairTrades(bars []marketdata.Bar, signals []contracts.Signal) []TradeRecord {
	type trigger struct {
		signal contracts.Signal
		date   time.Time
		price  float64
	}

	var triggers []trigger
	for i, s := range signals {
		if s != contracts.SignalHold && i < len(bars) {
			triggers = append(triggers, trigger{signal: s, date: bars[i].Date, price: bars[i].Close})
		}
	}

	var trades []TradeRecord
	i := 0
	for i < len(triggers)-1 {
		if triggers[i].signal == contracts.SignalBuy && triggers[i+1].signal == contracts.SignalSell {
			buy, sell := triggers[i], triggers[i+1]
			trades = append(trades, TradeRecord{
				EntryDate:  buy.date,
				EntryPrice: buy.price,
				ExitDate:   sell.date,
				ExitPrice:  sell.price,
				ReturnPct:  (sell.price - buy.price) / buy.price * 100,
				Win:        sell.price > buy.price,
			})
			i += 2
		} else {
			i++
		}
	}

	return trades
}
