package services

import (
	"strings"

	"github.com/231fa04g93/expense-tracker-api/models"
)

type keywordRule struct {
	category models.Category
	keywords []string
}

// keywordTable maps categories to their detection keywords. Order matters:
// the first category with a keyword found in the text wins, so e.g.
// "amazon prime" classifies as Entertainment before Shopping's "amazon"
// gets a chance. CategoryOther is the fallback and has no row here.
var keywordTable = []keywordRule{
	{models.CategoryFood, []string{
		"restaurant", "food", "grocery", "cafe", "dining", "meal", "lunch",
		"dinner", "breakfast", "snack", "pizza", "burger", "coffee", "tea",
	}},
	{models.CategoryTransport, []string{
		"uber", "taxi", "bus", "train", "fuel", "petrol", "metro", "auto",
		"rickshaw", "flight", "travel", "parking", "toll",
	}},
	{models.CategoryEntertainment, []string{
		"movie", "cinema", "game", "music", "streaming", "netflix",
		"amazon prime", "spotify", "concert", "show", "theater",
	}},
	{models.CategoryShopping, []string{
		"amazon", "flipkart", "mall", "store", "clothes", "shopping",
		"dress", "shirt", "shoes", "bag", "electronics", "mobile",
	}},
	{models.CategoryBills, []string{
		"electricity", "water", "internet", "phone", "rent", "insurance",
		"gas", "maintenance", "wifi", "broadband", "utility",
	}},
	{models.CategoryHealthcare, []string{
		"doctor", "medicine", "hospital", "pharmacy", "medical", "clinic",
		"health", "dentist", "checkup", "prescription",
	}},
	{models.CategoryEducation, []string{
		"course", "book", "tuition", "school", "college", "training",
		"workshop", "certification", "study", "exam",
	}},
}

// Categorize maps free-text transaction descriptions to a category by
// substring keyword match. It is total: any input, including the empty
// string, yields a category.
func Categorize(text string) models.Category {
	text = strings.ToLower(text)
	for _, rule := range keywordTable {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return models.CategoryOther
}
