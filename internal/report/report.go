package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"equity-intel/internal/intelligence"
)

// Format specifies the output format for intelligence reports
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Extension returns the file extension used when saving in this format
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// ParseFormat accepts json, text, markdown (or md), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "txt", "":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Reporter handles rendering and storage of intelligence reports
type Reporter struct {
	outputDir string
}

// NewReporter creates a new reporter
func NewReporter(outputDir string) *Reporter {
	return &Reporter{
		outputDir: outputDir,
	}
}

// Generate renders the report in the specified format
func (r *Reporter) Generate(report *intelligence.Report, format Format) (string, error) {
	if report == nil {
		return "", fmt.Errorf("nil report")
	}
	switch format {
	case FormatJSON:
		return r.generateJSON(report)
	case FormatText:
		return r.generateText(report), nil
	case FormatMarkdown:
		return r.generateMarkdown(report), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveReport writes the rendered report to <outputDir>/<TICKER>_intel_<ts>.<ext>
func (r *Reporter) SaveReport(report *intelligence.Report, format Format) (string, error) {
	content, err := r.Generate(report, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	timestamp := report.GeneratedAt.Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_intel_%s.%s", report.Ticker, timestamp, format.Extension())
	path := filepath.Join(r.outputDir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}

	return path, nil
}

func (r *Reporter) generateJSON(report *intelligence.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Reporter) generateText(report *intelligence.Report) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("EQUITY INTELLIGENCE REPORT - %s\n", report.Ticker))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Prediction: %s (%.1f%% confidence)\n", report.Prediction, report.Confidence))

	r.addNewsSection(&sb, report)
	r.addEarningsSection(&sb, report)
	r.addSentimentSection(&sb, report)
	r.addVolatilitySection(&sb, report)

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString("END OF REPORT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	return sb.String()
}

func sectionHeader(sb *strings.Builder, title string) {
	sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
}

func (r *Reporter) addNewsSection(sb *strings.Builder, report *intelligence.Report) {
	sectionHeader(sb, fmt.Sprintf("NEWS (%d unique, top %d)", report.News.TotalCount, len(report.News.TopHeadlines)))

	if len(report.News.TopHeadlines) == 0 {
		sb.WriteString("No recent headlines.\n")
		return
	}
	for i, h := range report.News.TopHeadlines {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, strings.ToUpper(string(h.ReasonTag)), h.Headline))
		sb.WriteString(fmt.Sprintf("   %s, %s\n", h.Source, h.Timestamp.Format("2006-01-02 15:04")))
		if h.URL != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", h.URL))
		}
	}
}

func (r *Reporter) addEarningsSection(sb *strings.Builder, report *intelligence.Report) {
	sectionHeader(sb, "EARNINGS EVENT RISK")

	e := report.Earnings
	date := "none"
	if e.EarningsDate != nil {
		date = *e.EarningsDate
	}
	sb.WriteString(fmt.Sprintf("Earnings Date: %s\n", date))
	if e.EPSEstimate != nil {
		sb.WriteString(fmt.Sprintf("EPS Estimate: %.2f\n", *e.EPSEstimate))
	}
	if e.EPSActual != nil {
		sb.WriteString(fmt.Sprintf("EPS Actual: %.2f\n", *e.EPSActual))
	}
	if surprise, ok := e.Surprise(); ok {
		sb.WriteString(fmt.Sprintf("EPS Surprise: %+.1f%%\n", surprise))
	}
	sb.WriteString(fmt.Sprintf("Risk Level: %s\n", e.RiskLevel))
	sb.WriteString(fmt.Sprintf("Reason: %s\n", e.RiskReason))
}

func (r *Reporter) addSentimentSection(sb *strings.Builder, report *intelligence.Report) {
	s := report.Sentiment
	sectionHeader(sb, fmt.Sprintf("SENTIMENT: %s (%+.2f)", s.OverallSentiment, s.SentimentScore))

	sb.WriteString("Supportive factors:\n")
	for _, f := range s.SupportiveFactors {
		sb.WriteString(fmt.Sprintf("  • %s\n", f))
	}
	sb.WriteString("Risk factors:\n")
	for _, f := range s.RiskFactors {
		sb.WriteString(fmt.Sprintf("  ⚠ %s\n", f))
	}
	sb.WriteString("\n" + s.ConfidenceSummary + "\n")
}

func (r *Reporter) generateMarkdown(report *intelligence.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s Intelligence Report\n\n", report.Ticker))
	sb.WriteString(fmt.Sprintf("_Generated %s_\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	sb.WriteString("## Confidence Overlay\n\n")
	sb.WriteString(report.Sentiment.ConfidenceSummary + "\n\n")

	sb.WriteString("**Supportive factors**\n\n")
	for _, f := range report.Sentiment.SupportiveFactors {
		sb.WriteString("- " + f + "\n")
	}
	sb.WriteString("\n**Risk factors**\n\n")
	for _, f := range report.Sentiment.RiskFactors {
		sb.WriteString("- " + f + "\n")
	}

	sb.WriteString("\n## Explanation\n\n")
	sb.WriteString(report.Sentiment.Explanation + "\n")

	r.addVolatilityMarkdown(&sb, report)

	return sb.String()
}
