package keyword

import "github.com/cardwise/cardwise/internal/model"

// Pattern is one entry in the ordered match table. Declaration order is
// the tiebreak: when two patterns match with equal weight, the earlier
// pattern wins. Merchant-specific patterns are declared first and carry
// higher weight than generic keyword patterns.
type Pattern struct {
	Name       string
	Regex      string
	Category   model.Category
	Weight     int
	Confidence float64
}

// defaultPatterns returns the built-in match table. Regexes run against
// normalized (lowercased) descriptions, so they are written lowercase;
// transaction strings like "STARBUCKS #1234 SEATTLE" normalize first.
func defaultPatterns() []Pattern {
	return []Pattern{
		// Named merchants. High weight, high confidence.
		{
			Name:       "Starbucks",
			Regex:      `\bstarbucks\b`,
			Category:   model.CategoryDining,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "McDonald's",
			Regex:      `\bmcdonald'?s?\b|\bmcd\b`,
			Category:   model.CategoryDining,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Chipotle",
			Regex:      `\bchipotle\b`,
			Category:   model.CategoryDining,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "DoorDash",
			Regex:      `\bdoordash\b|\bdd \*`,
			Category:   model.CategoryDining,
			Weight:     100,
			Confidence: 0.9,
		},
		{
			Name:       "Whole Foods",
			Regex:      `\bwhole\s*foods\b|\bwholefds\b`,
			Category:   model.CategoryGrocery,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Trader Joe's",
			Regex:      `\btrader\s*joe'?s?\b`,
			Category:   model.CategoryGrocery,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Safeway",
			Regex:      `\bsafeway\b`,
			Category:   model.CategoryGrocery,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Kroger",
			Regex:      `\bkroger\b`,
			Category:   model.CategoryGrocery,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Shell",
			Regex:      `\bshell\s*(oil|service|#?\d+)?\b`,
			Category:   model.CategoryGas,
			Weight:     100,
			Confidence: 0.9,
		},
		{
			Name:       "Chevron",
			Regex:      `\bchevron\b`,
			Category:   model.CategoryGas,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Exxon",
			Regex:      `\bexxon(mobil)?\b`,
			Category:   model.CategoryGas,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Amazon",
			Regex:      `\bamazon\b|\bamzn\b`,
			Category:   model.CategoryOnline,
			Weight:     100,
			Confidence: 0.9,
		},
		{
			Name:       "Netflix",
			Regex:      `\bnetflix\b`,
			Category:   model.CategoryEntertainment,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Spotify",
			Regex:      `\bspotify\b`,
			Category:   model.CategoryEntertainment,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Uber Eats",
			Regex:      `\buber\s*eats\b`,
			Category:   model.CategoryDining,
			Weight:     100,
			Confidence: 0.9,
		},
		{
			Name:       "Uber/Lyft",
			Regex:      `\buber\b|\blyft\b`,
			Category:   model.CategoryTransit,
			Weight:     95,
			Confidence: 0.9,
		},
		{
			Name:       "Delta Air Lines",
			Regex:      `\bdelta\s*air\b|\bdelta\s*airlines\b`,
			Category:   model.CategoryTravel,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "United Airlines",
			Regex:      `\bunited\s*air(lines)?\b`,
			Category:   model.CategoryTravel,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "Marriott",
			Regex:      `\bmarriott\b`,
			Category:   model.CategoryTravel,
			Weight:     100,
			Confidence: 0.95,
		},
		{
			Name:       "CVS/Walgreens",
			Regex:      `\bcvs\b|\bwalgreens\b`,
			Category:   model.CategoryHealthcare,
			Weight:     100,
			Confidence: 0.9,
		},
		{
			Name:       "Geico",
			Regex:      `\bgeico\b`,
			Category:   model.CategoryInsurance,
			Weight:     100,
			Confidence: 0.95,
		},

		// Generic keyword patterns. Lower weight and confidence; a named
		// merchant always outranks the bare category word.
		{
			Name:       "Restaurant keywords",
			Regex:      `\b(restaurant|cafe|coffee|diner|pizzeria|bistro|taqueria|grill|bakery)\b`,
			Category:   model.CategoryDining,
			Weight:     60,
			Confidence: 0.65,
		},
		{
			Name:       "Grocery keywords",
			Regex:      `\b(grocery|groceries|supermarket|market\s*place|food\s*mart)\b`,
			Category:   model.CategoryGrocery,
			Weight:     60,
			Confidence: 0.65,
		},
		{
			Name:       "Fuel keywords",
			Regex:      `\b(gas\s*station|fuel|petrol|gasoline)\b`,
			Category:   model.CategoryGas,
			Weight:     60,
			Confidence: 0.65,
		},
		{
			Name:       "Travel keywords",
			Regex:      `\b(airline|airlines|airways|hotel|motel|resort|airbnb|flight)\b`,
			Category:   model.CategoryTravel,
			Weight:     60,
			Confidence: 0.6,
		},
		{
			Name:       "Transit keywords",
			Regex:      `\b(metro|subway\s*fare|bus\s*fare|transit|parking|toll)\b`,
			Category:   model.CategoryTransit,
			Weight:     55,
			Confidence: 0.6,
		},
		{
			Name:       "Entertainment keywords",
			Regex:      `\b(cinema|theater|theatre|concert|streaming|tickets?)\b`,
			Category:   model.CategoryEntertainment,
			Weight:     55,
			Confidence: 0.6,
		},
		{
			Name:       "Utility keywords",
			Regex:      `\b(electric|water\s*bill|utility|utilities|internet\s*bill|power\s*co)\b`,
			Category:   model.CategoryUtilities,
			Weight:     55,
			Confidence: 0.6,
		},
		{
			Name:       "Healthcare keywords",
			Regex:      `\b(pharmacy|clinic|hospital|dental|medical|doctor)\b`,
			Category:   model.CategoryHealthcare,
			Weight:     55,
			Confidence: 0.6,
		},
		{
			Name:       "Insurance keywords",
			Regex:      `\b(insurance|premium\s*payment)\b`,
			Category:   model.CategoryInsurance,
			Weight:     55,
			Confidence: 0.6,
		},
		{
			Name:       "Online shopping keywords",
			Regex:      `\b(online|e-?commerce|\.com|web\s*store|shopping)\b`,
			Category:   model.CategoryOnline,
			Weight:     50,
			Confidence: 0.5,
		},
	}
}
