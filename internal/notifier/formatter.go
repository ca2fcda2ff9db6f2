package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"MoneyGrowth/internal/model"
)

func actionBadge(action model.Action) string {
	switch action {
	case model.ActionBuy:
		return "🟢 買入"
	case model.ActionSell:
		return "🔴 賣出"
	default:
		return "🟡 持有"
	}
}

func changeArrow(change float64) string {
	if change >= 0 {
		return "▲"
	}
	return "▼"
}

// FormatQuote formats a single normalized quote.
func FormatQuote(q *model.Quote) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>%s</b> %s\n", q.Symbol, q.Name))
	b.WriteString(fmt.Sprintf("價格: %.2f  %s %.2f (%+.2f%%)\n",
		q.Price, changeArrow(q.Change), abs(q.Change), q.ChangePercent))
	b.WriteString(fmt.Sprintf("成交量: %.0f\n", q.Volume))
	b.WriteString(fmt.Sprintf("%s  信心度 %d%%\n", actionBadge(q.Recommendation.Action),
		int(q.Recommendation.Confidence*100)))
	b.WriteString(q.Recommendation.Reason)
	return b.String()
}

// FormatQuoteDetail appends range statistics to a quote report.
func FormatQuoteDetail(q *model.Quote, stats *model.RangeStats) string {
	var b strings.Builder
	b.WriteString(FormatQuote(q))
	b.WriteString("\n\n📈 <b>近三個月</b>\n")
	b.WriteString(fmt.Sprintf("最高: %.2f | 最低: %.2f\n", stats.High, stats.Low))
	b.WriteString(fmt.Sprintf("均量: %.0f", stats.AvgVolume))
	return b.String()
}

// FormatWatchReport formats the batch refresh result for the whole
// watchlist, with per-symbol failures listed at the end.
func FormatWatchReport(quotes []model.Quote, failures map[string]error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>MoneyGrowth 觀察清單</b> | %s\n\n", time.Now().Format("2006-01-02")))

	for _, q := range quotes {
		b.WriteString(fmt.Sprintf("%s %s  %.2f (%+.2f%%)  %s\n",
			q.Symbol, q.Name, q.Price, q.ChangePercent, actionBadge(q.Recommendation.Action)))
		b.WriteString(fmt.Sprintf("   %s\n", q.Recommendation.Reason))
	}

	if len(failures) > 0 {
		syms := make([]string, 0, len(failures))
		for sym := range failures {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		b.WriteString(fmt.Sprintf("\n⚠️ 取得失敗: %s", strings.Join(syms, ", ")))
	}
	return b.String()
}

// FormatBacktestReport formats one simulation result.
func FormatBacktestReport(symbol string, res *model.BacktestResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔄 <b>%s 歷史回測</b>\n\n", symbol))
	b.WriteString(fmt.Sprintf("初始資金: %.0f\n", res.InitialCapital))
	b.WriteString(fmt.Sprintf("最終市值: %.0f\n", res.FinalValue))
	b.WriteString(fmt.Sprintf("累計損益: %+.0f (%+.2f%%)\n", res.Profit, res.ProfitPercent))
	b.WriteString(fmt.Sprintf("交易次數: %d | 勝率: %.1f%%\n", res.TradeCount, res.WinRate))

	if len(res.RecentTrades) > 0 {
		b.WriteString("\n最近交易:\n")
		for _, t := range res.RecentTrades {
			verb := "買入"
			if t.Action == model.ActionSell {
				verb = "賣出"
			}
			b.WriteString(fmt.Sprintf("  %s %d股 @ %.2f = %.0f\n", verb, t.Shares, t.Price, t.Value))
		}
	}

	b.WriteString("\n⚠️ 回測結果僅供參考,過去績效不代表未來表現")
	return b.String()
}

// FormatPortfolio marks holdings to the latest quotes and reports cost,
// market value and unrealized P&L.
func FormatPortfolio(holdings map[string]model.Holding, quotes map[string]*model.Quote) string {
	if len(holdings) == 0 {
		return "目前沒有持股記錄。使用 /hold 代號 股數 成本 新增。"
	}

	syms := make([]string, 0, len(holdings))
	for sym := range holdings {
		syms = append(syms, sym)
	}
	sort.Strings(syms)

	var b strings.Builder
	b.WriteString("💼 <b>持股總覽</b>\n\n")
	var totalCost, totalValue float64
	for _, sym := range syms {
		h := holdings[sym]
		cost := h.Shares * h.Cost
		totalCost += cost
		q, ok := quotes[sym]
		if !ok {
			b.WriteString(fmt.Sprintf("%s  %.0f股 @ %.2f (報價不可用)\n", sym, h.Shares, h.Cost))
			totalValue += cost
			continue
		}
		value := h.Shares * q.Price
		totalValue += value
		pnl := value - cost
		b.WriteString(fmt.Sprintf("%s  %.0f股 @ %.2f → %.2f  損益 %+.0f (%+.2f%%)\n",
			sym, h.Shares, h.Cost, q.Price, pnl, pnl/cost*100))
	}
	b.WriteString(fmt.Sprintf("\n總成本: %.0f\n總市值: %.0f\n未實現損益: %+.0f",
		totalCost, totalValue, totalValue-totalCost))
	return b.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
