// Package sanitize masks sensitive substrings in narration text
// before it crosses the process boundary. Masking is deterministic
// and idempotent: sanitizing already sanitized text changes nothing.
package sanitize

import (
	"strings"

	"finlens/internal/detect"
	"finlens/internal/narration"
)

// Role placeholders substituted for personal-name spans.
const (
	PlaceholderPayee         = "[PAYEE]"
	PlaceholderAccountHolder = "[ACCOUNT_HOLDER]"
)

// Measure describes one kind of protection applied to a message.
type Measure struct {
	Kind        detect.Kind `json:"kind"`
	Description string      `json:"description"`
	Count       int         `json:"count"`
}

// AuditRecord aggregates what was masked in a single narration.
type AuditRecord struct {
	Measures            []Measure `json:"measures"`
	TotalItemsProtected int       `json:"total_items_protected"`
}

var measureDescriptions = map[detect.Kind]string{
	detect.KindPhone:         "phone numbers partially masked",
	detect.KindAccountNumber: "account numbers partially masked",
	detect.KindUPIHandle:     "payment handles partially masked",
	detect.KindPersonalName:  "personal names replaced with role placeholders",
}

// Sanitizer applies kind-specific masks to detector findings.
type Sanitizer struct {
	detector *detect.Detector
}

func New(detector *detect.Detector) *Sanitizer {
	return &Sanitizer{detector: detector}
}

// Sanitize masks every finding in the narration and reports what was
// protected. The transaction amount steers the role placeholder for
// personal names. Replacements run right to left by span start so
// earlier offsets stay valid while the string changes length.
func (s *Sanitizer) Sanitize(text string, amount float64) (string, AuditRecord) {
	seg := narration.Segment(text)
	findings := s.detector.Detect(seg)
	return s.apply(seg, amount, findings)
}

func (s *Sanitizer) apply(seg narration.Segmented, amount float64, findings []detect.Finding) (string, AuditRecord) {
	masked := seg.Raw
	counts := make(map[detect.Kind]int)

	for i := len(findings) - 1; i >= 0; i-- {
		f := findings[i]
		var replacement string
		switch f.Kind {
		case detect.KindPhone:
			replacement = maskPhone(f.Raw)
		case detect.KindAccountNumber:
			replacement = maskAccount(f.Raw)
		case detect.KindUPIHandle:
			replacement = maskHandle(f.Raw)
		case detect.KindPersonalName:
			replacement = namePlaceholder(seg, amount, f)
		default:
			continue
		}
		if replacement == f.Raw {
			continue
		}
		masked = masked[:f.Start] + replacement + masked[f.End:]
		counts[f.Kind]++
	}

	record := AuditRecord{}
	for _, kind := range []detect.Kind{
		detect.KindUPIHandle,
		detect.KindAccountNumber,
		detect.KindPhone,
		detect.KindPersonalName,
	} {
		if counts[kind] == 0 {
			continue
		}
		record.Measures = append(record.Measures, Measure{
			Kind:        kind,
			Description: measureDescriptions[kind],
			Count:       counts[kind],
		})
		record.TotalItemsProtected += counts[kind]
	}
	return masked, record
}

// maskPhone keeps the last five digits and pads the front with X,
// preserving length. XXXXX43210 contains no ten digit run, so a
// second pass finds nothing.
func maskPhone(raw string) string {
	if len(raw) <= 5 {
		return raw
	}
	return strings.Repeat("X", len(raw)-5) + raw[len(raw)-5:]
}

// maskAccount keeps the last four digits behind a run of asterisks.
func maskAccount(raw string) string {
	if len(raw) <= 4 {
		return raw
	}
	return strings.Repeat("*", len(raw)-4) + raw[len(raw)-4:]
}

// maskHandle keeps the outer two characters of the portion before @
// and the bank code after it. Short handles lose the whole local part.
func maskHandle(raw string) string {
	at := strings.LastIndexByte(raw, '@')
	if at < 0 {
		return raw
	}
	local, bank := raw[:at], raw[at:]
	if len(local) <= 4 {
		return "***" + bank
	}
	return local[:2] + "***" + local[len(local)-2:] + bank
}

// namePlaceholder applies the position based role rule: the segment
// right after the channel tag holds the counterparty, the final
// segment holds the account holder. Between those the amount sign
// decides, outgoing money implies a payee.
func namePlaceholder(seg narration.Segmented, amount float64, f detect.Finding) string {
	idx := seg.SegmentIndexAt(f.Start)
	last := len(seg.Segments) - 1
	switch {
	case seg.Channel != narration.ChannelUnknown && idx == 1:
		return PlaceholderPayee
	case idx == last:
		return PlaceholderAccountHolder
	case amount < 0:
		return PlaceholderPayee
	default:
		return PlaceholderAccountHolder
	}
}
