package metagen

import (
	"encoding/json"
	"fmt"
	"strings"
)

var descriptionExamples = [...]string{
	"The Middle Way in Buddhism is a philosophy of balance that rejects both indulgence and harsh asceticism. " +
		"Rooted in the teachings of Shakyamuni Buddha, it links inner peace to respect for the dignity of all life. " +
		"Later thinkers extended the idea into a guide for social harmony and collective well-being.",
	"The article explores the strategies that dominate competitive Pokemon battles. " +
		"Perish traps, hazard stacks and weather teams built around sun, rain or sandstorm each trade offense for control. " +
		"Team composition and field conditions decide most matches between experienced players.",
	"Nietzsche described nihilism as the collapse of inherent meaning and feared its effect on shared values. " +
		"Existentialists such as Sartre and Camus later searched for ways to live authentically without a given purpose. " +
		"The article traces how these ideas shaped postmodern skepticism toward grand narratives.",
}

// Examples used by the single-stage templates.
var (
	summaryTemplateExamples = []string{
		"In 'The Innocent Man', John Grisham tells the true story of men wrongfully convicted of murder in Ada, Oklahoma. " +
			"Ron Williamson was pursued with fabricated testimony and flawed science despite a lack of hard evidence. " +
			"The book shows how easily justice miscarries and how hard it is for the innocent to escape the system.",
		"Nothing in life is fixed or permanent, which makes lasting security impossible to find. " +
			"Buddhism treats suffering as part of life and traces it to a deeply rooted sense of self. " +
			"The Noble Eightfold Path offers moral restraint, mindfulness and concentration as the way to liberation.",
		"The balance sheet gives an overview of a company's finances at a single moment in time. " +
			"Ratios such as debt-to-equity and the acid test help investors judge financial health. " +
			"Every balance sheet follows the equation Assets = Liabilities + Shareholders' Equity.",
	}

	titleTemplateExamples = []string{
		"The Girl With The Dragon Tattoo",
		"Unwrapping the Intricate Interplay Between Energy Dependency and Macroeconomic Volatility in OECD Countries",
		"Evaluating the Role of GDP Per Capita, Air Pollution and Non-Economic Factors in Determining Health Expenditure",
		"Your Table Is Ready: Tales of a New York City Maitre D'",
		"The Silent Patient",
	}

	keywordTemplateExamples = []string{
		"MachineLearning, ArtificialIntelligence, DataScience, PythonProgramming, DataAnalysis, Algorithms",
		"LovePoetry, NatureInspiration, FreeVerse, RhythmAndMeter, ImageryInPoetry, SocialCommentary",
		"ElectionCampaigns, GovernmentPolicy, SocialJustice, NationalSecurity, InternationalRelations, VotingRights",
		"MentalIllnessAwareness, AnxietyManagement, DepressionSupport, TraumaRecovery, MindfulnessPractices, MentalHealthStigma",
		"SingletonPattern, FactoryMethodPattern, ObserverPattern, StrategyPattern, DecoratorPattern, TemplateMethodPattern",
	}
)

// SelectExamples returns the first n options. When n is not between 1 and
// len(options) every option is returned.
func SelectExamples[T any](options []T, n int) []T {
	if n > 0 && n <= len(options) {
		return options[:n]
	}
	return options
}

// splitList splits a comma separated example into trimmed items.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// exampleResponses serializes the few-shot answers of kind as wrapper objects.
func exampleResponses(kind FieldKind) ([]string, error) {
	examples := kind.spec().examples
	out := make([]string, 0, len(examples))
	for _, ex := range examples {
		b, err := json.Marshal(StructuredResponse[any]{Response: ex})
		if err != nil {
			return nil, fmt.Errorf("encode %s example: %w", kind, err)
		}
		out = append(out, string(b))
	}
	return out, nil
}
