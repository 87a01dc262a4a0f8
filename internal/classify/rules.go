package classify

import "finlens/internal/models"

// Rule binds a keyword set to a category assignment. The slice order
// below IS the matching contract: earlier rules shadow later ones, and
// a narration matching several rules always resolves to the first.
// Changing the order changes classification results.
type Rule struct {
	CategoryID    string
	SubcategoryID string

	// Keywords match as substrings of individual tokens.
	Keywords []string

	// Phrases match as substrings of hyphen segments, for multi-word
	// vocabulary that token matching cannot see.
	Phrases []string
}

var keywordRules = []Rule{
	// Income first: credit vocabulary must win over any expense rule.
	{CategoryID: models.CategoryIncome, SubcategoryID: models.SubcategorySalary,
		Keywords: []string{"salary", "payroll", "wages", "stipend"}},
	{CategoryID: models.CategoryIncome, SubcategoryID: models.SubcategoryInterest,
		Keywords: []string{"interest"}, Phrases: []string{"int.pd", "int pd"}},
	{CategoryID: models.CategoryIncome, SubcategoryID: "dividends",
		Keywords: []string{"dividend"}},
	{CategoryID: models.CategoryIncome, SubcategoryID: "refunds",
		Keywords: []string{"refund", "cashback", "reversal"}},

	// Investments before general expenses so brokerage debits are not
	// swallowed by shopping-style rules.
	{CategoryID: models.CategoryInvestments, SubcategoryID: "stocks_trading",
		Keywords: []string{"trading", "demat", "brokerage", "securities"}},
	{CategoryID: models.CategoryInvestments, SubcategoryID: "mutual_funds",
		Keywords: []string{"elss", "amc"}, Phrases: []string{"mutual fund", "sip installment", "systematic investment"}},
	{CategoryID: models.CategoryInvestments, SubcategoryID: "gold_jewelry",
		Keywords: []string{"jewellers", "jewellery", "bullion", "sgb"}, Phrases: []string{"digital gold", "sovereign gold"}},
	{CategoryID: models.CategoryInvestments, SubcategoryID: "fixed_deposits",
		Phrases: []string{"fixed deposit", "term deposit", "fd booking"}},
	{CategoryID: models.CategoryInvestments, SubcategoryID: "ppf_nps",
		Keywords: []string{"ppf", "nps"}, Phrases: []string{"provident fund"}},

	{CategoryID: models.CategoryInsurance, SubcategoryID: "life_insurance",
		Keywords: []string{"lic", "ulip"}, Phrases: []string{"life insurance"}},
	{CategoryID: models.CategoryInsurance, SubcategoryID: "health_insurance",
		Keywords: []string{"mediclaim"}, Phrases: []string{"health insurance", "health policy"}},
	{CategoryID: models.CategoryInsurance, SubcategoryID: "vehicle_insurance",
		Keywords: []string{"acko"}, Phrases: []string{"car insurance", "motor insurance", "vehicle insurance"}},
	{CategoryID: models.CategoryInsurance, SubcategoryID: "general_insurance",
		Keywords: []string{"insurance", "premium", "policy"}},

	{CategoryID: models.CategoryEducation, SubcategoryID: "school_fees",
		Keywords: []string{"school", "tuition", "vidyalaya"}},
	{CategoryID: models.CategoryEducation, SubcategoryID: "coaching",
		Keywords: []string{"coaching"}},
	{CategoryID: models.CategoryEducation, SubcategoryID: "courses",
		Keywords: []string{"course", "training", "workshop", "certification"}},
	{CategoryID: models.CategoryEducation, SubcategoryID: "books",
		Keywords: []string{"stationery", "textbook"}},

	{CategoryID: models.CategoryHealthcare, SubcategoryID: "hospital",
		Keywords: []string{"hospital", "surgery", "clinic"}},
	{CategoryID: models.CategoryHealthcare, SubcategoryID: "pharmacy",
		Keywords: []string{"pharmacy", "medicine", "chemist"}},
	{CategoryID: models.CategoryHealthcare, SubcategoryID: "diagnostics",
		Keywords: []string{"diagnostic", "pathology"}},
	{CategoryID: models.CategoryHealthcare, SubcategoryID: "wellness",
		Keywords: []string{"gym", "fitness", "yoga"}},

	{CategoryID: models.CategoryFoodDining, SubcategoryID: "groceries",
		Keywords: []string{"grocery", "supermarket", "kirana", "vegetables"}},
	{CategoryID: models.CategoryFoodDining, SubcategoryID: "restaurants",
		Keywords: []string{"restaurant", "biryani", "pizza", "burger", "dhaba"}},
	{CategoryID: models.CategoryFoodDining, SubcategoryID: "cafe",
		Keywords: []string{"coffee", "cafe"}},

	{CategoryID: models.CategoryShopping, SubcategoryID: "electronics",
		Keywords: []string{"electronics", "laptop", "gadget"}},
	{CategoryID: models.CategoryShopping, SubcategoryID: "clothing",
		Keywords: []string{"clothing", "apparel", "garment"}},
	{CategoryID: models.CategoryShopping, SubcategoryID: "home_furniture",
		Keywords: []string{"furniture"}},

	{CategoryID: models.CategoryTransportation, SubcategoryID: "fuel",
		Keywords: []string{"petrol", "diesel", "fuel"}},
	{CategoryID: models.CategoryTransportation, SubcategoryID: "taxi",
		Keywords: []string{"taxi", "cab", "rickshaw"}},
	{CategoryID: models.CategoryTransportation, SubcategoryID: "public_transport",
		Keywords: []string{"metro", "railway", "fastag"}},
	{CategoryID: models.CategoryTransportation, SubcategoryID: "travel_booking",
		Keywords: []string{"flight", "airline"}},

	{CategoryID: models.CategoryUtilities, SubcategoryID: "electricity",
		Keywords: []string{"electricity"}, Phrases: []string{"power bill", "eb bill"}},
	{CategoryID: models.CategoryUtilities, SubcategoryID: "water",
		Phrases: []string{"water bill", "water supply"}},
	{CategoryID: models.CategoryUtilities, SubcategoryID: "internet",
		Keywords: []string{"broadband", "internet", "wifi", "fibernet"}},
	{CategoryID: models.CategoryUtilities, SubcategoryID: "mobile",
		Keywords: []string{"recharge", "prepaid", "postpaid"}, Phrases: []string{"mobile bill", "phone bill"}},
	{CategoryID: models.CategoryUtilities, SubcategoryID: "gas",
		Keywords: []string{"lpg", "cylinder", "indane"}},

	{CategoryID: models.CategoryEntertainment, SubcategoryID: "streaming",
		Keywords: []string{"streaming", "subscription"}},
	{CategoryID: models.CategoryEntertainment, SubcategoryID: "movies",
		Keywords: []string{"cinema", "movie", "multiplex"}},
	{CategoryID: models.CategoryEntertainment, SubcategoryID: "gaming",
		Keywords: []string{"playstation", "xbox", "gaming"}},

	{CategoryID: models.CategoryHousing, SubcategoryID: "rent",
		Keywords: []string{"rent", "rental", "landlord"}},
	{CategoryID: models.CategoryHousing, SubcategoryID: "maintenance",
		Keywords: []string{"maintenance", "society"}},
	{CategoryID: models.CategoryHousing, SubcategoryID: "home_services",
		Keywords: []string{"plumber", "electrician", "cleaning"}},

	{CategoryID: models.CategoryOther, SubcategoryID: "atm_withdrawal",
		Keywords: []string{"withdrawal", "atw"}, Phrases: []string{"atm wdl", "cash withdrawal"}},
	{CategoryID: models.CategoryOther, SubcategoryID: "bank_charges",
		Phrases: []string{"bank charge", "service charge", "annual fee", "sms charge"}},
}

// incomeVocabulary backs the heuristic income check for credits that
// no keyword rule caught.
var incomeVocabulary = map[string]bool{
	"SALARY": true, "INTEREST": true, "DIVIDEND": true, "DIVIDENDS": true,
	"PENSION": true, "STIPEND": true, "PAYROLL": true,
}
