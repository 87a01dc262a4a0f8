package sanitize

import (
	"testing"

	"finlens/internal/catalog"
	"finlens/internal/detect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer(t *testing.T) *Sanitizer {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return New(detect.NewDetector(catalog.NewStore(c)))
}

func TestSanitizeMasksUPIHandle(t *testing.T) {
	s := newTestSanitizer(t)

	masked, record := s.Sanitize("UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036", -849)

	assert.Contains(t, masked, "SW***GY@YBL")
	assert.NotContains(t, masked, "SWIGGY@YBL")
	assert.GreaterOrEqual(t, record.TotalItemsProtected, 1)
}

func TestSanitizeMasksAccountKeepingLastFour(t *testing.T) {
	s := newTestSanitizer(t)

	masked, _ := s.Sanitize("NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659", 85000)

	assert.Contains(t, masked, "CITIN*******4659")
	assert.NotContains(t, masked, "24401114659")
}

func TestSanitizeMasksPhoneKeepingLastFive(t *testing.T) {
	s := newTestSanitizer(t)

	masked, _ := s.Sanitize("UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500)

	assert.Contains(t, masked, "XXXXX43210@YBL")
	assert.NotContains(t, masked, "9876543210")
}

func TestSanitizeNameRoleCounterparty(t *testing.T) {
	s := newTestSanitizer(t)

	// Name in the segment right after the channel tag is the payee.
	masked, _ := s.Sanitize("UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500)
	assert.Contains(t, masked, PlaceholderPayee)
	assert.NotContains(t, masked, "JOHN DOE")
}

func TestSanitizeNameRoleAccountHolder(t *testing.T) {
	s := newTestSanitizer(t)

	// Mid-narration name on a credit maps to the account holder.
	masked, _ := s.Sanitize("NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659", 85000)
	assert.Contains(t, masked, PlaceholderAccountHolder)
	assert.NotContains(t, masked, "EMPLOYER NAME")
}

func TestSanitizePreservesUnmatchedText(t *testing.T) {
	s := newTestSanitizer(t)

	raw := "BIL/ONL/USERNETBANKING/BESCOM"
	masked, record := s.Sanitize(raw, -2140)

	assert.Equal(t, raw, masked)
	assert.Zero(t, record.TotalItemsProtected)
	assert.Empty(t, record.Measures)
}

func TestSanitizeAuditCountsPerKind(t *testing.T) {
	s := newTestSanitizer(t)

	_, record := s.Sanitize("UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500)

	counts := map[detect.Kind]int{}
	for _, m := range record.Measures {
		require.NotEmpty(t, m.Description)
		counts[m.Kind] = m.Count
	}
	assert.Equal(t, 1, counts[detect.KindPhone])
	assert.Equal(t, 1, counts[detect.KindPersonalName])

	total := 0
	for _, m := range record.Measures {
		total += m.Count
	}
	assert.Equal(t, total, record.TotalItemsProtected)
}

func TestSanitizeIsIdempotent(t *testing.T) {
	s := newTestSanitizer(t)

	narrations := []struct {
		raw    string
		amount float64
	}{
		{"UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036", -849},
		{"NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659", 85000},
		{"UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment", -500},
		{"IMPS-502913485761-RAMESH KUMAR-HDFC-XXXX4523-Rent transfer", -18000},
		{"ATM WDL-437276XXXXXX-MUMBAI", -5000},
		{"BIL/ONL/000456789123/BESCOM/Electricity bill", -2140},
	}

	for _, n := range narrations {
		once, _ := s.Sanitize(n.raw, n.amount)
		twice, record := s.Sanitize(once, n.amount)

		assert.Equal(t, once, twice, n.raw)
		assert.Zero(t, record.TotalItemsProtected, n.raw)
	}
}
