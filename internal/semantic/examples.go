package semantic

import "github.com/cardwise/cardwise/internal/model"

// Example is one labeled training description for index seeding.
type Example struct {
	Description string
	Category    model.Category
}

// TrainingExamples returns the built-in labeled seed set. Descriptions are
// phrased the way people actually describe purchases, not the way card
// statements abbreviate them; the keyword tier already covers statement
// strings.
func TrainingExamples() []Example {
	return []Example{
		{"weekly grocery run for the family", model.CategoryGrocery},
		{"picked up produce and milk at the store", model.CategoryGrocery},
		{"stocking up the pantry for the month", model.CategoryGrocery},
		{"dinner out with friends downtown", model.CategoryDining},
		{"lunch at the new ramen place", model.CategoryDining},
		{"morning coffee and a pastry", model.CategoryDining},
		{"ordered takeout for the game", model.CategoryDining},
		{"filled up the tank before the commute", model.CategoryGas},
		{"refueling my car for a road trip", model.CategoryGas},
		{"topped off gas on the highway", model.CategoryGas},
		{"booked flights for summer vacation", model.CategoryTravel},
		{"two nights at a hotel near the conference", model.CategoryTravel},
		{"rental car for the weekend trip", model.CategoryTravel},
		{"ordered a phone case online", model.CategoryOnline},
		{"bought a gadget from an online store", model.CategoryOnline},
		{"movie tickets for friday night", model.CategoryEntertainment},
		{"monthly streaming subscription renewal", model.CategoryEntertainment},
		{"concert tickets for the spring show", model.CategoryEntertainment},
		{"loaded the transit card for the month", model.CategoryTransit},
		{"paid for airport parking", model.CategoryTransit},
		{"ride share home from the airport", model.CategoryTransit},
		{"picked up a prescription at the pharmacy", model.CategoryHealthcare},
		{"copay for the dentist appointment", model.CategoryHealthcare},
		{"paid the monthly electric bill", model.CategoryUtilities},
		{"internet service for the apartment", model.CategoryUtilities},
		{"six month auto insurance premium", model.CategoryInsurance},
		{"renewed the renters insurance policy", model.CategoryInsurance},
	}
}
