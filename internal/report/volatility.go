package report

import (
	"fmt"
	"strings"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/ta"
)

const volatilityDisclaimer = "This analysis is observational and educational only. Not financial advice."

func regimeInterpretation(regime ta.VolatilityRegime) []string {
	switch regime {
	case ta.RegimeExpansion:
		return []string{
			"Short-term volatility expanding relative to longer-term measures",
			"Market appears to be entering a higher volatility phase",
		}
	case ta.RegimeCompression:
		return []string{
			"Short-term volatility compressing relative to longer-term measures",
			"Market appears to be stabilizing or entering lower volatility phase",
		}
	default:
		return []string{
			"Mixed volatility signals across timeframes",
			"Market in transitional volatility state",
		}
	}
}

func volatilityReasoning(a *ta.VolatilityAnalysis) []string {
	spread := "indicates relatively stable conditions"
	if a.RV30RV90Spread > 5 {
		spread = "suggests elevated near-term uncertainty"
	}

	level := "is near historical median"
	switch {
	case a.RV30Percentile > 70:
		level = "appears elevated"
	case a.RV30Percentile < 30:
		level = "appears subdued"
	}

	trend := "consistent with current regime"
	if a.Trend == ta.TrendIncreasing && a.RV30Percentile > 70 {
		trend = "potentially signaling mean reversion opportunity"
	}

	return []string{
		fmt.Sprintf("RV30 vs RV90 spread of %+.2f%% %s", a.RV30RV90Spread, spread),
		fmt.Sprintf("Current RV30 at %.1fth percentile %s", a.RV30Percentile, level),
		fmt.Sprintf("Short-term volatility trend is %s, %s", a.Trend, trend),
	}
}

func optionsInsight(a *ta.VolatilityAnalysis) string {
	switch {
	case a.Regime == ta.RegimeExpansion && a.Trend == ta.TrendIncreasing:
		return "Recent volatility patterns suggest a higher movement environment, which is often associated with defined-risk debit spreads or directional positioning with limited risk under elevated premium conditions."
	case a.Regime == ta.RegimeCompression && a.Trend == ta.TrendDecreasing:
		return "Recent volatility patterns suggest a lower movement environment, which is often associated with neutral income structures or credit strategies under compressed premium conditions."
	case a.RV30Percentile > 70:
		return "Recent volatility patterns suggest an elevated movement environment relative to historical norms, which is often associated with premium selling strategies or defined-risk structures under high implied volatility conditions."
	default:
		return "Recent volatility patterns suggest a stable movement environment, which is often associated with balanced risk-defined strategies under moderate premium conditions."
	}
}

func rv30Position(a *ta.VolatilityAnalysis) string {
	if a.CurrentRV30 > a.CurrentRV90 {
		return "ABOVE"
	}
	return "BELOW"
}

func (r *Reporter) addVolatilitySection(sb *strings.Builder, report *intelligence.Report) {
	a := report.Volatility
	if a == nil {
		return
	}
	sectionHeader(sb, fmt.Sprintf("REALIZED VOLATILITY: %s, %s", strings.ToUpper(string(a.Regime)), strings.ToUpper(string(a.Trend))))

	sb.WriteString(fmt.Sprintf("RV30: %.2f%%  RV60: %.2f%%  RV90: %.2f%%\n", a.CurrentRV30, a.CurrentRV60, a.CurrentRV90))
	sb.WriteString(fmt.Sprintf("Recent 10-day RV30 average: %.2f%%\n", a.RecentRV30Avg))
	sb.WriteString(fmt.Sprintf("Prior 30-day RV30 average: %.2f%%\n", a.PriorRV30Avg))
	sb.WriteString(fmt.Sprintf("RV30 is %s RV90 (spread %+.2f%%), %.1fth percentile over the past year\n",
		rv30Position(a), a.RV30RV90Spread, a.RV30Percentile))
	for _, line := range regimeInterpretation(a.Regime) {
		sb.WriteString(fmt.Sprintf("  • %s\n", line))
	}
	for _, line := range volatilityReasoning(a) {
		sb.WriteString(fmt.Sprintf("  • %s\n", line))
	}
	sb.WriteString("\n" + optionsInsight(a) + "\n")
	sb.WriteString("⚠ " + volatilityDisclaimer + "\n")
}

func (r *Reporter) addVolatilityMarkdown(sb *strings.Builder, report *intelligence.Report) {
	a := report.Volatility
	if a == nil {
		return
	}

	sb.WriteString(fmt.Sprintf("\n## Realized Volatility Analysis: %s\n\n", report.Ticker))

	sb.WriteString("### A) Volatility Trend Interpretation\n\n")
	sb.WriteString(fmt.Sprintf("**Short-term Trend:** %s\n", strings.ToUpper(string(a.Trend))))
	sb.WriteString(fmt.Sprintf("- Recent 10-day RV30 average: %.2f%%\n", a.RecentRV30Avg))
	sb.WriteString(fmt.Sprintf("- Prior 30-day RV30 average: %.2f%%\n", a.PriorRV30Avg))
	sb.WriteString(fmt.Sprintf("- Current RV30: %.2f%%\n\n", a.CurrentRV30))

	sb.WriteString("**Relative Positioning:**\n")
	sb.WriteString(fmt.Sprintf("- RV30 vs RV90 spread: %+.2f%%\n", a.RV30RV90Spread))
	sb.WriteString(fmt.Sprintf("- RV30 is %s RV90\n", rv30Position(a)))
	sb.WriteString(fmt.Sprintf("- Current RV30 at %.1fth percentile (past 12 months)\n\n", a.RV30Percentile))

	sb.WriteString("### B) Market Regime Assessment\n\n")
	sb.WriteString(fmt.Sprintf("**Volatility Environment:** %s\n", strings.ToUpper(string(a.Regime))))
	sb.WriteString(fmt.Sprintf("- RV30: %.2f%%\n", a.CurrentRV30))
	sb.WriteString(fmt.Sprintf("- RV60: %.2f%%\n", a.CurrentRV60))
	sb.WriteString(fmt.Sprintf("- RV90: %.2f%%\n\n", a.CurrentRV90))
	sb.WriteString("**Interpretation:**\n")
	for _, line := range regimeInterpretation(a.Regime) {
		sb.WriteString("- " + line + "\n")
	}

	sb.WriteString("\n### C) Quantitative Reasoning\n\n")
	for _, line := range volatilityReasoning(a) {
		sb.WriteString("- " + line + "\n")
	}

	sb.WriteString("\n### Options Environment Insight\n\n")
	sb.WriteString("_" + optionsInsight(a) + "_\n")
	sb.WriteString("\n**Disclaimer:** " + volatilityDisclaimer + "\n")
}
