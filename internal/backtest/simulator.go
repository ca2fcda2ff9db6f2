package backtest

import (
	"errors"

	"MoneyGrowth/internal/calculator"
	"MoneyGrowth/internal/model"
)

// InitialCapital is the fixed starting capital for every simulation,
// in currency-agnostic units. Trades are commission-free.
const InitialCapital = 100000.0

// minCloses is the shortest usable series: a defined SMA(20) plus at
// least 5 evaluation points after the window.
const minCloses = 25

// recentTradeCount bounds the ledger slice retained for display.
const recentTradeCount = 10

// ErrInsufficientHistory marks a series too short to simulate. Callers
// render a message instead of a result; nothing panics on short input.
var ErrInsufficientHistory = errors.New("insufficient history for backtest")

// Run replays an SMA(5)/SMA(20) crossover strategy over a valid-close
// sequence. The strategy holds at most one all-in position at a time
// and never shorts: a golden cross buys floor(capital/close) shares
// while flat, a death cross sells everything while holding, and any
// open position is marked to the last close at the end.
func Run(closes []float64) (*model.BacktestResult, error) {
	if len(closes) < minCloses {
		return nil, ErrInsufficientHistory
	}

	capital := InitialCapital
	shares := 0
	var trades []model.Trade

	for i := 20; i < len(closes); i++ {
		sma5 := calculator.SMA(closes, i, 5)
		sma20 := calculator.SMA(closes, i, 20)

		// No crossover is detectable at the first evaluable bar.
		prevSma5, prevSma20 := sma5, sma20
		if i > 20 {
			prevSma5 = calculator.SMA(closes, i-1, 5)
			prevSma20 = calculator.SMA(closes, i-1, 20)
		}

		// Golden cross: buy all-in while flat.
		if prevSma5 <= prevSma20 && sma5 > sma20 && shares == 0 && capital > 0 {
			shares = int(capital / closes[i])
			cost := float64(shares) * closes[i]
			capital -= cost
			trades = append(trades, model.Trade{
				Index:  i,
				Action: model.ActionBuy,
				Price:  closes[i],
				Shares: shares,
				Value:  cost,
			})
		}

		// Death cross: sell everything while holding.
		if prevSma5 >= prevSma20 && sma5 < sma20 && shares > 0 {
			value := float64(shares) * closes[i]
			capital += value
			trades = append(trades, model.Trade{
				Index:  i,
				Action: model.ActionSell,
				Price:  closes[i],
				Shares: shares,
				Value:  value,
			})
			shares = 0
		}
	}

	finalValue := capital + float64(shares)*closes[len(closes)-1]
	profit := finalValue - InitialCapital

	// A sell counts as a win when its proceeds exceed the value of the
	// immediately preceding ledger entry.
	wins, sells := 0, 0
	for i, t := range trades {
		if t.Action != model.ActionSell {
			continue
		}
		sells++
		if i > 0 && t.Value > trades[i-1].Value {
			wins++
		}
	}
	winRate := 0.0
	if sells > 0 {
		winRate = float64(wins) / float64(sells) * 100
	}

	recent := trades
	if len(recent) > recentTradeCount {
		recent = recent[len(recent)-recentTradeCount:]
	}

	return &model.BacktestResult{
		InitialCapital: InitialCapital,
		FinalValue:     finalValue,
		Profit:         profit,
		ProfitPercent:  profit / InitialCapital * 100,
		TradeCount:     len(trades),
		WinRate:        winRate,
		RecentTrades:   recent,
	}, nil
}
