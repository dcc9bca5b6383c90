// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	explanationMaxTokens = 150

	explanationSystemPrompt = "You are a helpful automotive shopping assistant. " +
		"Explain in 2-3 friendly sentences why a vehicle was recommended to a shopper. " +
		"Only use the facts provided. Do not invent features, prices or history."
)

// ExplanationInput is what an explainer may use to describe a recommendation.
type ExplanationInput struct {
	Vehicle     vehicle.Record
	Profile     *tracking.UserBehaviorProfile
	Score       float64
	Factors     []string
	SearchQuery string
}

// Explainer produces a natural-language explanation for a recommendation.
type Explainer interface {
	Explain(ctx context.Context, in *ExplanationInput) (string, error)
}

// ChatCompleter is a chat-completion backend such as openai.Client.
type ChatCompleter interface {
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
}

// NewExplainer returns an LLM explainer when completer is set, otherwise
// the template explainer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewExplainer(completer ChatCompleter, logger zerolog.Logger) Explainer {
	if completer == nil {
		return TemplateExplainer{}
	}
	return &LLMExplainer{completer: completer, logger: logger}
}

// TemplateExplainer builds explanations from fixed sentences per factor.
type TemplateExplainer struct{}

// Explain implements Explainer. It never fails.
func (TemplateExplainer) Explain(_ context.Context, in *ExplanationInput) (string, error) {
	metrics.RecordExplanation("template")
	return templateExplanation(in), nil
}

func templateExplanation(in *ExplanationInput) string {
	name := in.Vehicle.DisplayName()
	sentences := make([]string, 0, len(in.Factors))

	for _, f := range in.Factors {
		switch f {
		case FactorCollaborative:
			sentences = append(sentences, fmt.Sprintf("Shoppers with tastes like yours have shown strong interest in the %s.", name))
		case FactorContentMatch:
			sentences = append(sentences, "It lines up well with the price range, body style and features you have been browsing.")
		case FactorSimilarToViewed:
			sentences = append(sentences, "It is similar to vehicles you have been looking at.")
		case FactorBrandPreference:
			if in.Vehicle.Make != "" {
				sentences = append(sentences, fmt.Sprintf("You have shown interest in %s vehicles.", in.Vehicle.Make))
			}
		case FactorSearchRelevance:
			if in.SearchQuery != "" {
				sentences = append(sentences, fmt.Sprintf("It matches your search for %q.", in.SearchQuery))
			}
		case FactorTrending:
			sentences = append(sentences, "It is drawing a lot of attention from shoppers right now.")
		}
	}

	if len(sentences) == 0 {
		return fmt.Sprintf("The %s is a strong match based on your recent activity.", name)
	}
	return strings.Join(sentences, " ")
}

// LLMExplainer asks a chat-completion model for the explanation and falls
// back to the template on any failure.
type LLMExplainer struct {
	completer ChatCompleter
	logger    zerolog.Logger
}

// Explain implements Explainer.
func (l *LLMExplainer) Explain(ctx context.Context, in *ExplanationInput) (string, error) {
	text, err := l.completer.Complete(ctx, explanationSystemPrompt, buildExplanationPrompt(in), explanationMaxTokens)
	text = strings.TrimSpace(text)
	if err == nil && text != "" {
		metrics.RecordExplanation("llm")
		return text, nil
	}

	if err == nil {
		err = fmt.Errorf("empty completion")
	}
	metrics.RecordDependencyDegraded("chat_completion")
	metrics.RecordExplanation("template_fallback")
	l.logger.Warn().Err(err).Str("vehicle_id", in.Vehicle.ID).Msg("llm explanation failed, using template")
	return templateExplanation(in), nil
}

func buildExplanationPrompt(in *ExplanationInput) string {
	var b strings.Builder
	rec := &in.Vehicle

	b.WriteString("Vehicle:\n")
	fmt.Fprintf(&b, "- %s\n", rec.DisplayName())
	if rec.BodyStyle != "" {
		fmt.Fprintf(&b, "- Body style: %s\n", rec.BodyStyle)
	}
	if rec.Price > 0 {
		fmt.Fprintf(&b, "- Price: $%.0f\n", rec.Price)
	}
	if rec.Mileage > 0 {
		fmt.Fprintf(&b, "- Mileage: %d miles\n", rec.Mileage)
	}
	if len(rec.Features) > 0 {
		features := rec.Features
		if len(features) > 8 {
			features = features[:8]
		}
		fmt.Fprintf(&b, "- Key features: %s\n", strings.Join(features, ", "))
	}

	b.WriteString("\nShopper:\n")
	if p := in.Profile; p != nil {
		if brands := p.TopBrands(3); len(brands) > 0 {
			fmt.Fprintf(&b, "- Preferred brands: %s\n", strings.Join(brands, ", "))
		}
		if types := p.TopVehicleTypes(2); len(types) > 0 {
			fmt.Fprintf(&b, "- Preferred body styles: %s\n", strings.Join(types, ", "))
		}
		if pr := p.PriceRangePreference; pr != nil && pr.Samples > 0 {
			fmt.Fprintf(&b, "- Typical price range: $%.0f - $%.0f\n", pr.Min, pr.Max)
		}
		fmt.Fprintf(&b, "- Vehicles viewed: %d, saved: %d\n", p.TotalViews, p.TotalSaves)
	} else {
		b.WriteString("- New shopper with no browsing history\n")
	}
	if in.SearchQuery != "" {
		fmt.Fprintf(&b, "- Current search: %q\n", in.SearchQuery)
	}

	fmt.Fprintf(&b, "\nMatch confidence: %.0f%%\n", in.Score*100)
	if len(in.Factors) > 0 {
		fmt.Fprintf(&b, "Reasons: %s\n", strings.Join(in.Factors, ", "))
	}
	return b.String()
}
