// Package classify assigns one category per transaction through three
// tiers in strict precedence order: merchant catalog, keyword rules,
// sign/type heuristics. The first tier that succeeds is terminal.
package classify

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finlens/internal/catalog"
	"finlens/internal/detect"
	"finlens/internal/models"
	"finlens/internal/narration"
)

// Confidence ranks mirror the tier that produced the assignment.
const (
	RankMerchant     = 1
	RankKeyword      = 2
	RankHeuristic    = 3
	RankUnclassified = 4
)

// Result is the single classification every transaction receives.
type Result struct {
	TransactionID  uuid.UUID
	CategoryID     string
	SubcategoryID  string
	MerchantName   string // empty when no catalog merchant matched
	MatchKind      models.MatchKind
	ConfidenceRank int
}

type Classifier struct {
	catalogs *catalog.Store
	logger   *zap.Logger
}

func New(catalogs *catalog.Store, logger *zap.Logger) *Classifier {
	return &Classifier{catalogs: catalogs, logger: logger}
}

// Classify is pure and safe for concurrent use; the catalog snapshot
// is taken once so a mid-batch reload cannot split a transaction
// between two catalog versions.
func (c *Classifier) Classify(transactionID uuid.UUID, amount float64, seg narration.Segmented, findings []detect.Finding) Result {
	cat := c.catalogs.Current()

	// Tier 1: merchant catalog.
	if m := cat.Lookup(seg.Tokens); m != nil {
		return Result{
			TransactionID:  transactionID,
			CategoryID:     m.Entry.CategoryID,
			SubcategoryID:  m.Entry.SubcategoryID,
			MerchantName:   m.Entry.CanonicalName,
			MatchKind:      models.MatchMerchant,
			ConfidenceRank: RankMerchant,
		}
	}

	// Tier 2: keyword rules in fixed priority order.
	for i := range keywordRules {
		if ruleFires(&keywordRules[i], seg) {
			return Result{
				TransactionID:  transactionID,
				CategoryID:     keywordRules[i].CategoryID,
				SubcategoryID:  keywordRules[i].SubcategoryID,
				MatchKind:      models.MatchKeyword,
				ConfidenceRank: RankKeyword,
			}
		}
	}

	// Tier 3: sign and entity heuristics.
	return c.heuristic(transactionID, amount, seg, findings)
}

func ruleFires(r *Rule, seg narration.Segmented) bool {
	for _, kw := range r.Keywords {
		upper := strings.ToUpper(kw)
		for _, tok := range seg.Tokens {
			if strings.Contains(tok.Text, upper) {
				return true
			}
		}
	}
	for _, ph := range r.Phrases {
		upper := strings.ToUpper(ph)
		for _, s := range seg.Segments {
			if strings.Contains(s.Text, upper) {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) heuristic(transactionID uuid.UUID, amount float64, seg narration.Segmented, findings []detect.Finding) Result {
	if amount > 0 && (creditChannel(seg.Channel) || hasIncomeVocabulary(seg)) {
		return Result{
			TransactionID:  transactionID,
			CategoryID:     models.CategoryIncome,
			SubcategoryID:  models.SubcategoryOtherIncome,
			MatchKind:      models.MatchHeuristic,
			ConfidenceRank: RankHeuristic,
		}
	}

	if hasPersonalName(findings) {
		return Result{
			TransactionID:  transactionID,
			CategoryID:     models.CategoryTransfers,
			SubcategoryID:  transferSubcategory(seg.Channel),
			MatchKind:      models.MatchHeuristic,
			ConfidenceRank: RankHeuristic,
		}
	}

	if seg.Channel == narration.ChannelATM {
		return Result{
			TransactionID:  transactionID,
			CategoryID:     models.CategoryOther,
			SubcategoryID:  "atm_withdrawal",
			MatchKind:      models.MatchHeuristic,
			ConfidenceRank: RankHeuristic,
		}
	}

	// Not an error: unmatched narrations are expected and logged only
	// to guide catalog growth.
	c.logger.Debug("no classification rule matched",
		zap.String("transaction_id", transactionID.String()),
		zap.String("channel", string(seg.Channel)),
	)
	return Result{
		TransactionID:  transactionID,
		CategoryID:     models.CategoryOther,
		SubcategoryID:  models.SubcategoryUncategorized,
		MatchKind:      models.MatchUnclassified,
		ConfidenceRank: RankUnclassified,
	}
}

func creditChannel(ch narration.Channel) bool {
	return ch == narration.ChannelNEFT || ch == narration.ChannelIMPS || ch == narration.ChannelRTGS
}

func hasIncomeVocabulary(seg narration.Segmented) bool {
	for _, tok := range seg.Tokens {
		if incomeVocabulary[tok.Text] {
			return true
		}
	}
	return false
}

func hasPersonalName(findings []detect.Finding) bool {
	for _, f := range findings {
		if f.Kind == detect.KindPersonalName {
			return true
		}
	}
	return false
}

func transferSubcategory(ch narration.Channel) string {
	switch ch {
	case narration.ChannelNEFT:
		return "neft_transfer"
	case narration.ChannelIMPS:
		return "imps_transfer"
	case narration.ChannelRTGS:
		return "rtgs_transfer"
	case narration.ChannelUPI:
		return "upi_transfer"
	default:
		return models.SubcategoryBankTransfer
	}
}
