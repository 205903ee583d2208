package cli

import (
	"fmt"
	"strings"

	"github.com/cardwise/cardwise/internal/model"
	"github.com/cardwise/cardwise/internal/service"
)

// RenderClassification formats a classification result for the terminal.
func RenderClassification(result model.ClassificationResult) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Classification"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		BoldStyle.Render(string(result.Category)),
		SubtleStyle.Render(fmt.Sprintf("(%.0f%% via %s)", result.Confidence*100, result.Source))))
	if result.Reasoning != "" {
		b.WriteString(SubtleStyle.Render(result.Reasoning))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRecommendation formats a ranked recommendation for the terminal.
func RenderRecommendation(rec service.Recommendation) string {
	var b strings.Builder
	b.WriteString(RenderClassification(rec.Classification))
	b.WriteString("\n")

	if rec.Primary == nil {
		b.WriteString(WarningStyle.Render("No candidate cards to rank."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(TitleStyle.Render("Best card"))
	b.WriteString("\n")
	b.WriteString(renderCard(*rec.Primary))

	if len(rec.Alternatives) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Alternatives"))
		b.WriteString("\n")
		for _, alt := range rec.Alternatives {
			b.WriteString(renderCard(alt))
		}
	}
	return b.String()
}

func renderCard(rec model.CardRecommendation) string {
	line := fmt.Sprintf("%s %s  %s\n",
		BoldStyle.Render(rec.Card.Name),
		SubtleStyle.Render(rec.Card.Issuer),
		SuccessStyle.Render(fmt.Sprintf("%.2fx", rec.Rate)))
	detail := SubtleStyle.Render(fmt.Sprintf("  score %.3f: %s", rec.Score, rec.Reasoning))
	if rec.CapStatus.Exhausted() {
		detail += " " + WarningStyle.Render("[cap reached]")
	}
	return line + detail + "\n"
}

// RenderGaps formats gap analysis output for the terminal.
func RenderGaps(records []model.GapRecord, mode model.GapMode) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Portfolio gaps"))
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(SuccessStyle.Render("No material gaps: your portfolio matches the market everywhere."))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range records {
		switch {
		case r.Improvement > 0:
			b.WriteString(fmt.Sprintf("%-14s you earn %.1fx, market best is %s\n",
				r.Category,
				r.UserBestRate,
				WarningStyle.Render(fmt.Sprintf("%.1fx (+%.1f)", r.MarketBestRate, r.Improvement))))
		default:
			b.WriteString(fmt.Sprintf("%-14s you earn %.1fx, %s\n",
				r.Category,
				r.UserBestRate,
				SuccessStyle.Render("already optimal")))
		}
	}

	if mode == model.GapModeAuto {
		b.WriteString(SubtleStyle.Render("Showing categories where the market beats you by at least 1.0x."))
		b.WriteString("\n")
	}
	return b.String()
}
