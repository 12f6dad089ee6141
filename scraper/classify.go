package scraper

import "strings"

// clothingTypes is checked in order; the first category with any keyword hit
// wins, so the ordering is the tie-break (a "t-shirt dress" classifies as a
// shirt, not a dress).
var clothingTypes = []struct {
	name     string
	keywords []string
}{
	{"shirt", []string{"shirt", "t-shirt", "tee", "polo", "blouse", "top", "henley"}},
	{"pants", []string{"pants", "jeans", "trousers", "chinos", "slacks", "joggers"}},
	{"shorts", []string{"shorts"}},
	{"dress", []string{"dress", "gown"}},
	{"skirt", []string{"skirt"}},
	{"jacket", []string{"jacket", "blazer", "coat", "hoodie", "sweater", "cardigan"}},
}

// DetectClothingType infers the garment category from the title and feature
// text. Returns "" when nothing matches.
func DetectClothingType(title string, features []string) string {
	text := classifierText(title, features)
	for _, ct := range clothingTypes {
		for _, kw := range ct.keywords {
			if strings.Contains(text, kw) {
				return ct.name
			}
		}
	}
	return ""
}

var genderMarkers = []struct {
	name    string
	phrases []string
}{
	{"men", []string{"men's", "mens", "male", "for men"}},
	{"women", []string{"women's", "womens", "female", "for women", "ladies"}},
	{"unisex", []string{"unisex"}},
}

// DetectGender infers the target gender from the same text basis, testing
// men/women/unisex markers in that priority order.
func DetectGender(title string, features []string) string {
	text := classifierText(title, features)
	for _, g := range genderMarkers {
		for _, phrase := range g.phrases {
			if strings.Contains(text, phrase) {
				return g.name
			}
		}
	}
	return ""
}

func classifierText(title string, features []string) string {
	return strings.ToLower(title + " " + strings.Join(features, " "))
}
