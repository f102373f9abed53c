package taxonomy

import "finize/txextract/internal/models"

// defaultCategories is the built-in CategoryKeywordTable in declaration order.
var defaultCategories = []models.CategoryConfig{
	{Name: models.CategoryFood, Keywords: []string{
		"food", "lunch", "dinner", "breakfast", "burger", "pizza", "subway", "zomato", "swiggy",
		"restaurant", "cafe", "coffee", "tea", "snacks", "dining", "mcdonalds", "kfc", "dominos",
		"starbucks", "briyani", "hotel", "mess",
	}},
	{Name: models.CategoryGroceries, Keywords: []string{
		"grocery", "groceries", "bigbasket", "blinkit", "zepto", "instamart", "milk", "fruits",
		"vegetables", "supermarket", "mart", "kirana", "bread", "egg", "ration", "reliance fresh", "dmart",
	}},
	{Name: models.CategoryTransportation, Keywords: []string{
		"cab", "uber", "ola", "taxi", "auto", "bus", "train", "flight", "ticket", "fuel", "petrol",
		"diesel", "parking", "toll", "metro", "ride", "rapido", "yulu", "scooter", "bike", "car",
	}},
	{Name: models.CategoryBills, Keywords: []string{
		"bill", "electricity", "water", "gas", "recharge", "wifi", "broadband", "mobile", "internet",
		"dth", "rent", "maintenance", "bescom", "bwssb", "jio", "airtel", "vi", "vodafone",
	}},
	{Name: models.CategoryShopping, Keywords: []string{
		"shop", "store", "amazon", "flipkart", "myntra", "ajio", "clothes", "shirt", "pant", "shoes",
		"accessories", "toy", "gift", "electronics", "mall", "decathlon", "zara", "h&m", "purchase", "bought",
	}},
	{Name: models.CategoryEntertainment, Keywords: []string{
		"movie", "cinema", "film", "netflix", "prime", "spotify", "game", "subscription", "event",
		"ticket", "show", "bookmyshow", "hotstar", "youtube", "playstation", "xbox",
	}},
	{Name: models.CategoryHealthcare, Keywords: []string{
		"doctor", "pharmacy", "medicine", "hospital", "clinic", "gym", "fitness", "yoga", "test", "lab",
		"medical", "pharmeasy", "cult", "apollo", "1mg",
	}},
	{Name: models.CategoryTravel, Keywords: []string{
		"hotel", "stay", "booking", "trip", "tour", "vacation", "resort", "airbnb", "makemytrip",
		"goibibo", "easemytrip", "irctc",
	}},
	{Name: models.CategoryEducation, Keywords: []string{
		"school", "college", "fee", "course", "book", "stationery", "udemy", "coursera", "tuition",
		"class", "learning", "workshop",
	}},
	{Name: models.CategoryFamilySupport, Keywords: []string{
		"mother", "father", "sister", "brother", "parent", "family", "relative", "mom", "dad", "bro",
		"sis", "cousin", "wife", "husband", "son", "daughter",
	}},
	{Name: models.CategoryCelebration, Keywords: []string{
		"diwali", "birthday", "wedding", "gift", "festival", "party", "rakhi", "holi", "christmas",
		"new year", "anniversary", "celebration", "treat",
	}},
	{Name: models.CategoryIncome, Keywords: []string{
		"salary", "bonus", "credit", "interest", "dividend", "refund", "income", "paycheck", "stipend", "earnings",
	}},
	{Name: models.CategoryInvestment, Keywords: []string{
		"stocks", "mutual fund", "sip", "fd", "investment", "zerodha", "groww", "upstox", "coin",
	}},
	{Name: models.CategoryRent, Keywords: []string{
		"rent", "landlord", "house rent", "office rent", "rental",
	}},
}

// defaultPriority is the order in which the categorizer tests categories.
var defaultPriority = []string{
	models.CategoryCelebration,
	models.CategoryRent,
	models.CategoryIncome,
	models.CategoryInvestment,
	models.CategoryFamilySupport,
	models.CategoryHealthcare,
	models.CategoryTravel,
	models.CategoryEducation,
	models.CategoryBills,
	models.CategoryGroceries,
	models.CategoryFood,
	models.CategoryTransportation,
	models.CategoryEntertainment,
	models.CategoryShopping,
}

// defaultTypos is applied top to bottom; earlier entries win on overlap.
var defaultTypos = []models.TypoConfig{
	{Canonical: "mother", Misspellings: []string{"mo r", "motr", "mothr"}},
	{Canonical: "father", Misspellings: []string{"fa her", "fathr"}},
	{Canonical: "sister", Misspellings: []string{"sist r", "sistr"}},
	{Canonical: "brother", Misspellings: []string{"brot er", "brothr"}},
	{Canonical: "swiggy", Misspellings: []string{"swigyy", "swigy"}},
	{Canonical: "zomato", Misspellings: []string{"zomto"}},
	{Canonical: "amazon", Misspellings: []string{"amazn", "amzn"}},
	{Canonical: "netflix", Misspellings: []string{"netflx"}},
	{Canonical: "uber", Misspellings: []string{"ubr"}},
	{Canonical: "diwali", Misspellings: []string{"diw li", "divali", "deepavali"}},
	{Canonical: "restaurant", Misspellings: []string{"rsturnt"}},
	{Canonical: "lakh", Misspellings: []string{"l kh", "lack"}},
	{Canonical: "2000", Misspellings: []string{"too thousand"}},
}

var defaultNumberWords = map[string]int64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90,
	"hundred": 100, "thousand": 1000, "lakh": 100000, "lac": 100000, "crore": 10000000, "k": 1000,
}

// defaultGenericWords are keywords too vague to stand in as a merchant name.
var defaultGenericWords = []string{
	"food", "lunch", "dinner", "cab", "auto", "bill", "shop", "movie", "doctor", "school", "rent",
}

var defaultFillerWords = []string{"my", "the", "a", "an", "rs", "rupees", "inr"}
