// Package contracts holds the types passed between pipeline stages.
package contracts

import "fmt"

// Signal is a per-bar trading trigger.
// 信号: +1 买入, -1 卖出, 0 不动作.
type Signal int

const (
	SignalSell Signal = -1
	SignalHold Signal = 0
	SignalBuy  Signal = 1
)

// Valid reports whether the signal is one of {-1, 0, +1}.
func (s Signal) Valid() bool {
	return s == SignalSell || s == SignalHold || s == SignalBuy
}

// String returns a readable form.
func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "buy"
	case SignalSell:
		return "sell"
	case SignalHold:
		return "hold"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}
