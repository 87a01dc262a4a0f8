package classify

import (
	"testing"

	"finlens/internal/catalog"
	"finlens/internal/detect"
	"finlens/internal/models"
	"finlens/internal/narration"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClassifier(t *testing.T) (*Classifier, *detect.Detector) {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	store := catalog.NewStore(c)
	return New(store, zap.NewNop()), detect.NewDetector(store)
}

func classifyRaw(t *testing.T, raw string, amount float64) Result {
	t.Helper()
	classifier, detector := newTestClassifier(t)
	seg := narration.Segment(raw)
	findings := detector.Detect(seg)
	return classifier.Classify(uuid.New(), amount, seg, findings)
}

func TestClassifyMerchantTier(t *testing.T) {
	result := classifyRaw(t, "UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036", -849)

	assert.Equal(t, models.CategoryFoodDining, result.CategoryID)
	assert.Equal(t, "Swiggy", result.MerchantName)
	assert.Equal(t, models.MatchMerchant, result.MatchKind)
	assert.Equal(t, RankMerchant, result.ConfidenceRank)
}

func TestClassifyMerchantBeatsKeyword(t *testing.T) {
	// "pharmacy" is a keyword, but Apollo Pharmacy is cataloged; the
	// merchant tier must win.
	result := classifyRaw(t, "UPI-APOLLO PHARMACY-APOLLO@YBL-YESB0YBLUPI-Medicines", -867)

	assert.Equal(t, models.MatchMerchant, result.MatchKind)
	assert.Equal(t, "Apollo Pharmacy", result.MerchantName)
}

func TestClassifyKeywordTier(t *testing.T) {
	result := classifyRaw(t, "NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659", 85000)

	assert.Equal(t, models.CategoryIncome, result.CategoryID)
	assert.Equal(t, models.SubcategorySalary, result.SubcategoryID)
	assert.Equal(t, models.MatchKeyword, result.MatchKind)
	assert.Equal(t, RankKeyword, result.ConfidenceRank)
	assert.Empty(t, result.MerchantName)
}

func TestClassifyKeywordPriorityIsDeterministic(t *testing.T) {
	// Matches both the insurance rule ("premium") and the streaming
	// rule ("subscription"); insurance is earlier in the rule table
	// and must win on every run.
	raw := "NACH-PREMIUM SUBSCRIPTION DUE-000000289471"
	first := classifyRaw(t, raw, -4518)
	assert.Equal(t, models.CategoryInsurance, first.CategoryID)

	for i := 0; i < 10; i++ {
		again := classifyRaw(t, raw, -4518)
		assert.Equal(t, first.CategoryID, again.CategoryID)
		assert.Equal(t, first.SubcategoryID, again.SubcategoryID)
	}
}

func TestClassifyHeuristicIncomeCredit(t *testing.T) {
	result := classifyRaw(t, "IMPS-502913485761-MONTHLY CREDIT", 12000)

	assert.Equal(t, models.CategoryIncome, result.CategoryID)
	assert.Equal(t, models.SubcategoryOtherIncome, result.SubcategoryID)
	assert.Equal(t, models.MatchHeuristic, result.MatchKind)
}

func TestClassifyHeuristicPersonalNameTransfer(t *testing.T) {
	result := classifyRaw(t, "UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500)

	assert.Equal(t, models.CategoryTransfers, result.CategoryID)
	assert.Equal(t, "upi_transfer", result.SubcategoryID)
	assert.Equal(t, models.MatchHeuristic, result.MatchKind)
}

func TestClassifyTransferSubcategoryTracksChannel(t *testing.T) {
	result := classifyRaw(t, "IMPS-502913485761-RAMESH KUMAR-HDFC-XXXX4523-Rental", -18000)
	// "rent" keyword fires before the transfer heuristic.
	assert.Equal(t, models.CategoryHousing, result.CategoryID)

	result = classifyRaw(t, "IMPS-502913485761-RAMESH KUMAR-HDFC-XXXX4523", -18000)
	assert.Equal(t, models.CategoryTransfers, result.CategoryID)
	assert.Equal(t, "imps_transfer", result.SubcategoryID)
}

func TestClassifyUnmatchedIsNeverDropped(t *testing.T) {
	result := classifyRaw(t, "BIL/ONL/000456789123/UNKNOWNBILLER", -100)

	assert.Equal(t, models.CategoryOther, result.CategoryID)
	assert.Equal(t, models.SubcategoryUncategorized, result.SubcategoryID)
	assert.Equal(t, models.MatchUnclassified, result.MatchKind)
	assert.Equal(t, RankUnclassified, result.ConfidenceRank)
}

func TestClassifyEveryResultHasDefinedMatchKind(t *testing.T) {
	narrations := []struct {
		raw    string
		amount float64
	}{
		{"UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036", -849},
		{"NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659", 85000},
		{"UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500},
		{"ATM WDL-437276XXXXXX-MUMBAI", -5000},
		{"BIL/ONL/000456789123/UNKNOWNBILLER", -100},
		{"", 0},
	}

	defined := map[models.MatchKind]bool{
		models.MatchMerchant:     true,
		models.MatchKeyword:      true,
		models.MatchHeuristic:    true,
		models.MatchUnclassified: true,
	}

	for _, n := range narrations {
		result := classifyRaw(t, n.raw, n.amount)
		assert.True(t, defined[result.MatchKind], n.raw)
		assert.NotEmpty(t, result.CategoryID, n.raw)
		assert.NotEmpty(t, result.SubcategoryID, n.raw)
	}
}
