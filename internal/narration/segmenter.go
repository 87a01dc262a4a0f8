// Package narration splits raw bank-statement narration strings into
// the normalized token sequence shared by the classifier, the entity
// detector and the privacy sanitizer.
package narration

import "strings"

// Channel is the coarse transaction rail derived from the narration
// prefix.
type Channel string

const (
	ChannelUPI     Channel = "UPI"
	ChannelNEFT    Channel = "NEFT"
	ChannelIMPS    Channel = "IMPS"
	ChannelRTGS    Channel = "RTGS"
	ChannelATM     Channel = "ATM"
	ChannelPOS     Channel = "POS"
	ChannelNACH    Channel = "NACH"
	ChannelECS     Channel = "ECS"
	ChannelUnknown Channel = "UNKNOWN"
)

var channelVocabulary = map[string]Channel{
	"UPI":  ChannelUPI,
	"NEFT": ChannelNEFT,
	"IMPS": ChannelIMPS,
	"RTGS": ChannelRTGS,
	"ATM":  ChannelATM,
	"POS":  ChannelPOS,
	"NACH": ChannelNACH,
	"ECS":  ChannelECS,
}

// IsChannelWord reports whether an uppercased token belongs to the
// banking-channel vocabulary.
func IsChannelWord(token string) bool {
	_, ok := channelVocabulary[token]
	return ok
}

// Span is a normalized (uppercased) slice of the narration with byte
// offsets into the raw string. Offsets stay valid for masking because
// normalization never changes byte positions.
type Span struct {
	Text  string
	Start int
	End   int
}

// Segmented is the segmenter output consumed by the other components.
type Segmented struct {
	Raw string

	// Segments are the hyphen-delimited fields, in order. Banking
	// systems emit positional hyphen-separated narrations; the
	// sanitizer's role rule depends on these positions.
	Segments []Span

	// Tokens are word-level: split on hyphens and whitespace with
	// repeated delimiters collapsed.
	Tokens []Span

	Channel Channel
}

// Segment never fails: an empty or unparseable narration yields a
// single token equal to the trimmed original and channel UNKNOWN.
func Segment(raw string) Segmented {
	seg := Segmented{Raw: raw, Channel: ChannelUnknown}

	seg.Segments = split(raw, func(r rune) bool { return r == '-' })
	seg.Tokens = split(raw, func(r rune) bool {
		return r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	if len(seg.Tokens) == 0 {
		trimmed := strings.TrimSpace(raw)
		seg.Tokens = []Span{{Text: strings.ToUpper(trimmed), Start: 0, End: len(trimmed)}}
		seg.Segments = seg.Tokens
		return seg
	}

	if ch, ok := channelVocabulary[seg.Tokens[0].Text]; ok {
		seg.Channel = ch
	}
	return seg
}

// SegmentIndexAt returns the index of the hyphen segment containing
// the byte offset, or -1 when the offset falls on a delimiter.
func (s Segmented) SegmentIndexAt(offset int) int {
	for i, span := range s.Segments {
		if offset >= span.Start && offset < span.End {
			return i
		}
	}
	return -1
}

func split(raw string, isDelim func(rune) bool) []Span {
	var spans []Span
	start := -1
	for i, r := range raw {
		if isDelim(r) {
			if start >= 0 {
				spans = append(spans, makeSpan(raw, start, i))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, makeSpan(raw, start, len(raw)))
	}
	return spans
}

func makeSpan(raw string, start, end int) Span {
	// Trim surrounding whitespace inside hyphen segments so
	// "NEFT CR - NAME " yields clean fields.
	text := raw[start:end]
	for len(text) > 0 && text[0] == ' ' {
		text = text[1:]
		start++
	}
	for len(text) > 0 && text[len(text)-1] == ' ' {
		text = text[:len(text)-1]
		end--
	}
	return Span{Text: strings.ToUpper(text), Start: start, End: end}
}
