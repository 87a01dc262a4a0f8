package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchKind records which classifier tier produced a category
// assignment. The tiers form a strict precedence order: merchant
// beats keyword beats heuristic.
type MatchKind string

const (
	MatchMerchant     MatchKind = "merchant"
	MatchKeyword      MatchKind = "keyword"
	MatchHeuristic    MatchKind = "heuristic"
	MatchUnclassified MatchKind = "unclassified"
)

// Transaction is one bank-statement line item. It is created by the
// ingestion layer and immutable afterwards except for the
// classification columns, which a bulk reclassify may rewrite.
type Transaction struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	Date          time.Time `db:"date"`
	Narration     string    `db:"narration"`
	Amount        float64   `db:"amount"` // signed; positive = credit
	AccountRef    string    `db:"account_ref"`
	CategoryID    string    `db:"category_id"`
	SubcategoryID string    `db:"subcategory_id"`
	MerchantName  string    `db:"merchant_name"`
	MatchKind     MatchKind `db:"match_kind"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
