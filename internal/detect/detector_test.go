package detect

import (
	"testing"

	"finlens/internal/catalog"
	"finlens/internal/narration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return NewDetector(c)
}

func detectRaw(t *testing.T, raw string) []Finding {
	t.Helper()
	d := newTestDetector(t)
	return d.Detect(narration.Segment(raw))
}

func findingsOfKind(findings []Finding, kind Kind) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestDetectUPIHandle(t *testing.T) {
	findings := detectRaw(t, "UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036")

	handles := findingsOfKind(findings, KindUPIHandle)
	require.Len(t, handles, 1)
	assert.Equal(t, "SWIGGY@YBL", handles[0].Raw)

	assert.Empty(t, findingsOfKind(findings, KindPhone))
	assert.Empty(t, findingsOfKind(findings, KindPersonalName))
}

func TestDetectHandleRequiresKnownBankCode(t *testing.T) {
	findings := detectRaw(t, "EMAIL someone@example regarding invoice")
	assert.Empty(t, findingsOfKind(findings, KindUPIHandle))
}

func TestDetectDigitOnlyHandleFallsToPhone(t *testing.T) {
	findings := detectRaw(t, "UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment")

	assert.Empty(t, findingsOfKind(findings, KindUPIHandle))
	phones := findingsOfKind(findings, KindPhone)
	require.Len(t, phones, 1)
	assert.Equal(t, "9876543210", phones[0].Raw)
}

func TestDetectAttachedAccountNumber(t *testing.T) {
	findings := detectRaw(t, "NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659")

	accounts := findingsOfKind(findings, KindAccountNumber)
	require.Len(t, accounts, 1)
	assert.Equal(t, "24401114659", accounts[0].Raw)
}

func TestDetectStandaloneAccountNeedsBankContext(t *testing.T) {
	// Preceded by an IFSC-shaped token: accepted.
	findings := detectRaw(t, "UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036")
	accounts := findingsOfKind(findings, KindAccountNumber)
	require.Len(t, accounts, 1)
	assert.Equal(t, "437276589036", accounts[0].Raw)

	// Preceded by an unrelated word: rejected.
	findings = detectRaw(t, "ORDER CONFIRMATION 437276589036")
	assert.Empty(t, findingsOfKind(findings, KindAccountNumber))
}

func TestDetectPersonalNamePair(t *testing.T) {
	findings := detectRaw(t, "UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment")

	names := findingsOfKind(findings, KindPersonalName)
	require.Len(t, names, 1)
	assert.Equal(t, "JOHN DOE", names[0].Raw)
}

func TestDetectNameSkipsBankingVocabulary(t *testing.T) {
	findings := detectRaw(t, "NEFT CR-CITI0000003-EMPLOYER NAME-SALARY-CITIN24401114659")

	names := findingsOfKind(findings, KindPersonalName)
	require.Len(t, names, 1)
	assert.Equal(t, "EMPLOYER NAME", names[0].Raw)
}

func TestDetectNameSkipsCatalogedMerchants(t *testing.T) {
	findings := detectRaw(t, "UPI-ZOMATO LTD-ZOMATO@PTAXIS-UTIB0000100-Food order")
	assert.Empty(t, findingsOfKind(findings, KindPersonalName))
}

func TestDetectFindingsAreSortedAndDisjoint(t *testing.T) {
	findings := detectRaw(t, "UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment")
	require.NotEmpty(t, findings)

	for i := 1; i < len(findings); i++ {
		assert.GreaterOrEqual(t, findings[i].Start, findings[i-1].End)
	}
}

func TestDetectIgnoresMaskedRemnants(t *testing.T) {
	findings := detectRaw(t, "UPI-[PAYEE]-XXXXX43210@YBL-SBIN0017785-Payment")

	assert.Empty(t, findingsOfKind(findings, KindUPIHandle))
	assert.Empty(t, findingsOfKind(findings, KindPhone))
	assert.Empty(t, findingsOfKind(findings, KindPersonalName))

	findings = detectRaw(t, "UPI-SWIGGY-SW***GY@YBL-YESB0YBLUPI-Order")
	assert.Empty(t, findingsOfKind(findings, KindUPIHandle))
}
