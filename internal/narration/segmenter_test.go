package narration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentChannelDetection(t *testing.T) {
	cases := map[string]Channel{
		"UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036": ChannelUPI,
		"NEFT CR-CITI0000003-EMPLOYER NAME-SALARY":       ChannelNEFT,
		"IMPS-502913485761-RAMESH KUMAR-HDFC":            ChannelIMPS,
		"ATM WDL-437276XXXXXX-MUMBAI":                    ChannelATM,
		"POS 416021XXXXXX9041 BIGBASKET":                 ChannelPOS,
		"BIL/ONL/000456789123/BESCOM":                    ChannelUnknown,
	}

	for raw, want := range cases {
		seg := Segment(raw)
		assert.Equal(t, want, seg.Channel, raw)
	}
}

func TestSegmentSplitsHyphenFields(t *testing.T) {
	seg := Segment("UPI-JOHN DOE-9876543210@YBL-SBIN0017785-Payment")

	require.Len(t, seg.Segments, 5)
	assert.Equal(t, "UPI", seg.Segments[0].Text)
	assert.Equal(t, "JOHN DOE", seg.Segments[1].Text)
	assert.Equal(t, "PAYMENT", seg.Segments[4].Text)
}

func TestSegmentTokensSplitOnSpacesToo(t *testing.T) {
	seg := Segment("NEFT CR-CITI0000003-EMPLOYER NAME-SALARY")

	texts := make([]string, len(seg.Tokens))
	for i, tok := range seg.Tokens {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"NEFT", "CR", "CITI0000003", "EMPLOYER", "NAME", "SALARY"}, texts)
}

func TestSegmentOffsetsIndexRawString(t *testing.T) {
	raw := "UPI-JOHN DOE-Payment"
	seg := Segment(raw)

	for _, tok := range seg.Tokens {
		assert.Equal(t, tok.Text, upper(raw[tok.Start:tok.End]))
	}
	for _, s := range seg.Segments {
		assert.Equal(t, s.Text, upper(raw[s.Start:s.End]))
	}
}

func upper(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func TestSegmentIndexAt(t *testing.T) {
	raw := "UPI-JOHN DOE-Payment"
	seg := Segment(raw)

	assert.Equal(t, 0, seg.SegmentIndexAt(0))
	assert.Equal(t, 1, seg.SegmentIndexAt(4))
	assert.Equal(t, 2, seg.SegmentIndexAt(len(raw)-1))
	assert.Equal(t, -1, seg.SegmentIndexAt(3))
}

func TestSegmentNeverFails(t *testing.T) {
	seg := Segment("")
	require.Len(t, seg.Tokens, 1)
	assert.Equal(t, ChannelUnknown, seg.Channel)

	seg = Segment("---")
	require.NotEmpty(t, seg.Tokens)
	assert.Equal(t, ChannelUnknown, seg.Channel)
}

func TestSegmentTrimsSpacesInsideFields(t *testing.T) {
	seg := Segment("NEFT - EMPLOYER NAME - SALARY")

	require.Len(t, seg.Segments, 3)
	assert.Equal(t, "EMPLOYER NAME", seg.Segments[1].Text)
	assert.Equal(t, "SALARY", seg.Segments[2].Text)
}
