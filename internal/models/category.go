package models

// Category identifiers. The order of Categories below is the fixed
// display order; classification precedence lives in the classifier's
// rule table, not here.
const (
	CategoryIncome         = "income"
	CategoryInvestments    = "investments"
	CategoryInsurance      = "insurance"
	CategoryEducation      = "education"
	CategoryHealthcare     = "healthcare"
	CategoryTransfers      = "transfers"
	CategoryFoodDining     = "food_dining"
	CategoryShopping       = "shopping"
	CategoryTransportation = "transportation"
	CategoryUtilities      = "utilities"
	CategoryEntertainment  = "entertainment"
	CategoryHousing        = "housing"
	CategoryOther          = "other"
)

// Frequently referenced subcategory identifiers. The full set is in
// Categories; these are the ones other packages name directly.
const (
	SubcategorySalary        = "salary"
	SubcategoryInterest      = "interest"
	SubcategoryOtherIncome   = "other_income"
	SubcategoryBankTransfer  = "bank_transfer"
	SubcategoryUncategorized = "uncategorized"
)

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Color         string        `json:"color"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Categories is the fixed category hierarchy served to clients and
// referenced by the merchant catalog and keyword rules.
var Categories = []Category{
	{
		ID: CategoryIncome, Name: "Income", Icon: "💰", Color: "#4CAF50",
		Subcategories: []Subcategory{
			{ID: SubcategorySalary, Name: "Salary"},
			{ID: SubcategoryInterest, Name: "Interest"},
			{ID: "dividends", Name: "Dividends"},
			{ID: "refunds", Name: "Refunds"},
			{ID: SubcategoryOtherIncome, Name: "Other Income"},
		},
	},
	{
		ID: CategoryInvestments, Name: "Investments", Icon: "💎", Color: "#2196F3",
		Subcategories: []Subcategory{
			{ID: "stocks_trading", Name: "Stocks & Trading"},
			{ID: "mutual_funds", Name: "Mutual Funds & SIP"},
			{ID: "gold_jewelry", Name: "Gold & Jewelry"},
			{ID: "fixed_deposits", Name: "Fixed Deposits"},
			{ID: "ppf_nps", Name: "PPF & NPS"},
		},
	},
	{
		ID: CategoryInsurance, Name: "Insurance", Icon: "🛡️", Color: "#00BCD4",
		Subcategories: []Subcategory{
			{ID: "life_insurance", Name: "Life Insurance"},
			{ID: "health_insurance", Name: "Health Insurance"},
			{ID: "vehicle_insurance", Name: "Vehicle Insurance"},
			{ID: "general_insurance", Name: "General Insurance"},
		},
	},
	{
		ID: CategoryEducation, Name: "Education", Icon: "📚", Color: "#9C27B0",
		Subcategories: []Subcategory{
			{ID: "school_fees", Name: "School Fees"},
			{ID: "courses", Name: "Training & Courses"},
			{ID: "coaching", Name: "Coaching & Tuition"},
			{ID: "books", Name: "Books & Materials"},
		},
	},
	{
		ID: CategoryHealthcare, Name: "Healthcare", Icon: "🏥", Color: "#9966FF",
		Subcategories: []Subcategory{
			{ID: "hospital", Name: "Hospital"},
			{ID: "pharmacy", Name: "Pharmacy"},
			{ID: "diagnostics", Name: "Diagnostics & Labs"},
			{ID: "wellness", Name: "Wellness & Fitness"},
		},
	},
	{
		ID: CategoryTransfers, Name: "Money Transfer", Icon: "💸", Color: "#607D8B",
		Subcategories: []Subcategory{
			{ID: "neft_transfer", Name: "NEFT Transfer"},
			{ID: "imps_transfer", Name: "IMPS Transfer"},
			{ID: "rtgs_transfer", Name: "RTGS Transfer"},
			{ID: "upi_transfer", Name: "UPI Transfer"},
			{ID: SubcategoryBankTransfer, Name: "Bank Transfer"},
		},
	},
	{
		ID: CategoryFoodDining, Name: "Food & Dining", Icon: "🍔", Color: "#FF6384",
		Subcategories: []Subcategory{
			{ID: "groceries", Name: "Groceries"},
			{ID: "food_delivery", Name: "Food Delivery"},
			{ID: "restaurants", Name: "Restaurants"},
			{ID: "cafe", Name: "Cafe & Coffee"},
		},
	},
	{
		ID: CategoryShopping, Name: "Shopping", Icon: "🛒", Color: "#36A2EB",
		Subcategories: []Subcategory{
			{ID: "online_shopping", Name: "Online Shopping"},
			{ID: "electronics", Name: "Electronics"},
			{ID: "clothing", Name: "Clothing & Fashion"},
			{ID: "home_furniture", Name: "Home & Furniture"},
		},
	},
	{
		ID: CategoryTransportation, Name: "Transportation", Icon: "🚗", Color: "#FFCE56",
		Subcategories: []Subcategory{
			{ID: "fuel", Name: "Fuel"},
			{ID: "taxi", Name: "Taxi & Rideshare"},
			{ID: "public_transport", Name: "Public Transport"},
			{ID: "travel_booking", Name: "Travel & Booking"},
		},
	},
	{
		ID: CategoryUtilities, Name: "Utilities", Icon: "💡", Color: "#4BC0C0",
		Subcategories: []Subcategory{
			{ID: "electricity", Name: "Electricity"},
			{ID: "water", Name: "Water"},
			{ID: "internet", Name: "Internet & Broadband"},
			{ID: "mobile", Name: "Mobile & Phone"},
			{ID: "gas", Name: "Gas & LPG"},
		},
	},
	{
		ID: CategoryEntertainment, Name: "Entertainment", Icon: "🎬", Color: "#FF9F40",
		Subcategories: []Subcategory{
			{ID: "streaming", Name: "Streaming Services"},
			{ID: "movies", Name: "Movies & Theatre"},
			{ID: "gaming", Name: "Gaming"},
		},
	},
	{
		ID: CategoryHousing, Name: "Housing", Icon: "🏠", Color: "#8BC34A",
		Subcategories: []Subcategory{
			{ID: "rent", Name: "Rent"},
			{ID: "maintenance", Name: "Maintenance"},
			{ID: "home_services", Name: "Home Services"},
		},
	},
	{
		ID: CategoryOther, Name: "Other", Icon: "📦", Color: "#795548",
		Subcategories: []Subcategory{
			{ID: "atm_withdrawal", Name: "ATM Withdrawal"},
			{ID: "bank_charges", Name: "Bank Charges"},
			{ID: SubcategoryUncategorized, Name: "Uncategorized"},
		},
	},
}

var categoryIndex = buildCategoryIndex()

func buildCategoryIndex() map[string]*Category {
	idx := make(map[string]*Category, len(Categories))
	for i := range Categories {
		idx[Categories[i].ID] = &Categories[i]
	}
	return idx
}

// CategoryByID returns the category definition, or nil for an unknown
// identifier.
func CategoryByID(id string) *Category {
	return categoryIndex[id]
}

// SubcategoryName resolves a subcategory's display name; unknown
// identifiers come back title-less as the raw id.
func SubcategoryName(categoryID, subcategoryID string) string {
	cat := categoryIndex[categoryID]
	if cat == nil {
		return subcategoryID
	}
	for _, sub := range cat.Subcategories {
		if sub.ID == subcategoryID {
			return sub.Name
		}
	}
	return subcategoryID
}
