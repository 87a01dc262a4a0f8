// Package detect finds sensitive substrings in bank narrations:
// payment handles, account numbers, phone numbers and personal names.
// A single detection pass feeds both the classifier's transfer
// heuristic and the privacy sanitizer, so the two never disagree about
// what a name is.
package detect

import (
	"regexp"
	"strings"

	"finlens/internal/narration"
)

// Kind labels a detected entity.
type Kind string

const (
	KindUPIHandle     Kind = "upi_handle"
	KindAccountNumber Kind = "account_number"
	KindPhone         Kind = "phone"
	KindPersonalName  Kind = "personal_name"
)

// Finding is a detected sensitive substring with byte offsets into the
// raw narration.
type Finding struct {
	Kind  Kind
	Start int
	End   int
	Raw   string
}

// MerchantChecker suppresses business names during personal-name
// detection. Satisfied by *catalog.Catalog.
type MerchantChecker interface {
	ContainsAlias(s string) bool
}

// Patterns are compiled once; the pass order below is the precedence
// order for overlapping spans — the earlier pass keeps the span, the
// later finding is dropped entirely.
var (
	upiHandleRE = regexp.MustCompile(`[A-Za-z0-9._]+@[A-Za-z]+`)
	// Attached bank prefix directly followed by the account digits,
	// e.g. CITIN24401114659.
	attachedAccountRE = regexp.MustCompile(`\b([A-Za-z]{3,6})(\d{8,16})\b`)
	digitRunRE        = regexp.MustCompile(`\d+`)
	maskedLocalRE     = regexp.MustCompile(`^X+\d+$`)
	ifscRE            = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	letterRE          = regexp.MustCompile(`[A-Za-z]`)
	allLettersRE      = regexp.MustCompile(`^[A-Za-z]+$`)
)

// Bank short-codes accepted as the suffix of a payment handle.
var handleBankCodes = map[string]bool{
	"ybl": true, "axl": true, "apl": true, "ibl": true, "yapl": true,
	"paytm": true, "ptyes": true, "ptaxis": true, "ptsbi": true,
	"okaxis": true, "oksbi": true, "okicici": true, "okhdfcbank": true,
	"icici": true, "hdfcbank": true, "axisbank": true, "upi": true,
	"yesbank": true, "kotak": true, "barodampay": true,
}

// Four-letter bank codes recognized as account-number prefixes.
var bankCodes = map[string]bool{
	"CITI": true, "HDFC": true, "ICIC": true, "SBIN": true, "UTIB": true,
	"YESB": true, "YESF": true, "AXIS": true, "KKBK": true, "BARB": true,
	"IDFB": true, "PUNB": true, "CNRB": true, "UBIN": true, "IOBA": true,
}

// Banking jargon that shadows personal-name detection.
var nameDenylist = map[string]bool{
	"TRANSFER": true, "PAYMENT": true, "SALARY": true, "WITHDRAWAL": true,
	"CASH": true, "CREDIT": true, "DEBIT": true, "AUTOPAY": true,
	"MANDATE": true, "MANDATEREQUEST": true, "INTEREST": true,
	"REFUND": true, "CASHBACK": true, "REVERSAL": true, "MONTHLY": true,
	"PHONE": true, "FROM": true, "USING": true, "SENT": true, "BANK": true,
	"LTD": true, "PVT": true, "LIMITED": true, "PRIVATE": true,
	"CHARGES": true, "CHARGE": true, "FEE": true, "BILL": true,
	"RECHARGE": true, "CR": true, "DR": true, "WDL": true, "AC": true,
	"INR": true, "EMI": true, "LOAN": true, "INFO": true, "REF": true,
	"TXN": true, "PAYEE": true, "ACCOUNT": true, "HOLDER": true,
	"MR": true, "MRS": true, "MS": true, "SHRI": true, "SMT": true,
	"FOOD": true, "ORDER": true, "SHOPPING": true, "SUBSCRIPTION": true,
	"TRIP": true, "RENT": true, "MEDICINES": true, "PREMIUM": true,
	"ELECTRICITY": true, "FUNDS": true, "ADDED": true,
}

type Detector struct {
	merchants MerchantChecker
}

func NewDetector(merchants MerchantChecker) *Detector {
	return &Detector{merchants: merchants}
}

// Detect runs the four passes in precedence order over the segmented
// narration and returns the surviving findings ordered by start
// offset.
func (d *Detector) Detect(seg narration.Segmented) []Finding {
	var claimed []Finding

	claimed = appendNonOverlapping(claimed, d.upiHandles(seg.Raw))
	claimed = appendNonOverlapping(claimed, d.accountNumbers(seg))
	claimed = appendNonOverlapping(claimed, d.phones(seg.Raw))
	claimed = appendNonOverlapping(claimed, d.personalNames(seg))

	sortByStart(claimed)
	return claimed
}

func (d *Detector) upiHandles(raw string) []Finding {
	var out []Finding
	for _, loc := range upiHandleRE.FindAllStringIndex(raw, -1) {
		match := raw[loc[0]:loc[1]]
		at := strings.LastIndexByte(match, '@')
		handle, bank := match[:at], match[at+1:]

		if !handleBankCodes[strings.ToLower(bank)] {
			continue
		}
		// Digit-only handles are phone numbers wearing a handle; the
		// phone and account passes own those spans. A masked phone
		// ("XXXXX43210") must not be re-claimed either.
		if !letterRE.MatchString(handle) || maskedLocalRE.MatchString(handle) {
			continue
		}
		// A masked handle leaves its tail behind ("SW***GY@YBL"); do
		// not re-claim it.
		if loc[0] > 0 && raw[loc[0]-1] == '*' {
			continue
		}
		out = append(out, Finding{Kind: KindUPIHandle, Start: loc[0], End: loc[1], Raw: match})
	}
	return out
}

func (d *Detector) accountNumbers(seg narration.Segmented) []Finding {
	var out []Finding

	for _, m := range attachedAccountRE.FindAllStringSubmatchIndex(seg.Raw, -1) {
		prefix := strings.ToUpper(seg.Raw[m[2]:m[3]])
		if !recognizedBankPrefix(prefix) {
			continue
		}
		start, end := m[4], m[5]
		out = append(out, Finding{Kind: KindAccountNumber, Start: start, End: end, Raw: seg.Raw[start:end]})
	}

	// Standalone digit runs count only when the token just before them
	// is a bank code, an IFSC code, or the channel tag itself.
	for _, loc := range digitRunRE.FindAllStringIndex(seg.Raw, -1) {
		n := loc[1] - loc[0]
		if n < 8 || n > 16 {
			continue
		}
		if !isStandaloneRun(seg.Raw, loc[0], loc[1]) {
			continue
		}
		prev := tokenBefore(seg.Tokens, loc[0])
		if prev == nil || !recognizedBankToken(prev.Text) {
			continue
		}
		out = append(out, Finding{Kind: KindAccountNumber, Start: loc[0], End: loc[1], Raw: seg.Raw[loc[0]:loc[1]]})
	}
	return out
}

func (d *Detector) phones(raw string) []Finding {
	var out []Finding
	for _, loc := range digitRunRE.FindAllStringIndex(raw, -1) {
		if loc[1]-loc[0] != 10 || !isStandaloneRun(raw, loc[0], loc[1]) {
			continue
		}
		out = append(out, Finding{Kind: KindPhone, Start: loc[0], End: loc[1], Raw: raw[loc[0]:loc[1]]})
	}
	return out
}

func (d *Detector) personalNames(seg narration.Segmented) []Finding {
	var out []Finding
	tokens := seg.Tokens
	for i := 0; i < len(tokens); i++ {
		if !d.nameToken(seg.Raw, tokens[i]) {
			continue
		}
		// Prefer the adjacent pair when both halves qualify and only
		// whitespace separates them: "JOHN DOE" is one name, not two.
		if i+1 < len(tokens) &&
			d.nameToken(seg.Raw, tokens[i+1]) &&
			onlySpacesBetween(seg.Raw, tokens[i].End, tokens[i+1].Start) &&
			!d.merchants.ContainsAlias(tokens[i].Text+" "+tokens[i+1].Text) {
			start, end := tokens[i].Start, tokens[i+1].End
			out = append(out, Finding{Kind: KindPersonalName, Start: start, End: end, Raw: seg.Raw[start:end]})
			i++
			continue
		}
		out = append(out, Finding{Kind: KindPersonalName, Start: tokens[i].Start, End: tokens[i].End, Raw: seg.Raw[tokens[i].Start:tokens[i].End]})
	}
	return out
}

// nameToken applies the personal-name heuristics to a single token:
// purely alphabetic, at least two characters, title-cased or all-caps
// in the raw text, and neither banking vocabulary nor a cataloged
// merchant.
func (d *Detector) nameToken(raw string, t narration.Span) bool {
	if t.End-t.Start < 2 {
		return false
	}
	original := raw[t.Start:t.End]
	if !allLettersRE.MatchString(original) {
		return false
	}
	if !isTitleCase(original) && !isAllCaps(original) {
		return false
	}
	if narration.IsChannelWord(t.Text) || nameDenylist[t.Text] {
		return false
	}
	if d.merchants.ContainsAlias(t.Text) {
		return false
	}
	return true
}

func recognizedBankPrefix(prefix string) bool {
	if bankCodes[prefix] {
		return true
	}
	return len(prefix) > 4 && bankCodes[prefix[:4]]
}

func recognizedBankToken(token string) bool {
	if narration.IsChannelWord(token) || ifscRE.MatchString(token) {
		return true
	}
	alpha := leadingLetters(token)
	return len(alpha) >= 4 && recognizedBankPrefix(alpha)
}

// tokenBefore returns the closest token ending at or before offset.
func tokenBefore(tokens []narration.Span, offset int) *narration.Span {
	var prev *narration.Span
	for i := range tokens {
		if tokens[i].End <= offset {
			prev = &tokens[i]
			continue
		}
		break
	}
	return prev
}

func leadingLetters(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return s[:i]
		}
	}
	return s
}

// isStandaloneRun rejects digit runs glued to other digits or letters,
// so "CITIN24401114659" is not also a phone candidate for its inner
// digits and handle usernames are matched whole.
func isStandaloneRun(raw string, start, end int) bool {
	if start > 0 {
		c := raw[start-1]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			return false
		}
	}
	if end < len(raw) {
		c := raw[end]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			return false
		}
	}
	return true
}

func onlySpacesBetween(raw string, from, to int) bool {
	if from >= to {
		return false
	}
	for i := from; i < to; i++ {
		if raw[i] != ' ' {
			return false
		}
	}
	return true
}

func isTitleCase(s string) bool {
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func isAllCaps(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func overlaps(a, b Finding) bool {
	return a.Start < b.End && b.Start < a.End
}

func appendNonOverlapping(claimed, candidates []Finding) []Finding {
	for _, c := range candidates {
		taken := false
		for _, f := range claimed {
			if overlaps(f, c) {
				taken = true
				break
			}
		}
		if !taken {
			claimed = append(claimed, c)
		}
	}
	return claimed
}

func sortByStart(fs []Finding) {
	for i := 1; i < len(fs); i++ {
		for j := i; j > 0 && fs[j].Start < fs[j-1].Start; j-- {
			fs[j], fs[j-1] = fs[j-1], fs[j]
		}
	}
}
