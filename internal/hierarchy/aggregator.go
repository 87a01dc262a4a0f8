// Package hierarchy folds classified transactions into the
// Category → Subcategory → Merchant drill-down tree. Trees are built
// per query and never persisted.
package hierarchy

import (
	"sort"
	"time"

	"finlens/internal/models"
)

// Direction filters transactions by sign.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
	DirectionAll     Direction = "all"
)

// Filter bounds the fold. Zero times leave the corresponding side of
// the date range open.
type Filter struct {
	From      time.Time
	To        time.Time
	Direction Direction
}

// UnspecifiedMerchant buckets transactions classified without a
// catalog merchant.
const UnspecifiedMerchant = "Unspecified"

type MerchantNode struct {
	Name                   string               `json:"name"`
	AmountTotal            float64              `json:"amount"`
	TransactionCount       int                  `json:"transaction_count"`
	PercentageOfParent     float64              `json:"percentage"`
	PercentageOfGrandTotal float64              `json:"percentage_of_total"`
	Transactions           []models.Transaction `json:"-"`
}

type SubcategoryNode struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	AmountTotal            float64        `json:"amount"`
	TransactionCount       int            `json:"transaction_count"`
	PercentageOfParent     float64        `json:"percentage"`
	PercentageOfGrandTotal float64        `json:"percentage_of_total"`
	Merchants              []MerchantNode `json:"merchants"`
}

type CategoryNode struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	Icon                   string            `json:"icon"`
	Color                  string            `json:"color"`
	AmountTotal            float64           `json:"amount"`
	TransactionCount       int               `json:"transaction_count"`
	PercentageOfParent     float64           `json:"percentage"`
	PercentageOfGrandTotal float64           `json:"percentage_of_total"`
	Subcategories          []SubcategoryNode `json:"subcategories"`
}

type Tree struct {
	GrandTotal       float64        `json:"total_amount"`
	TransactionCount int            `json:"transaction_count"`
	Categories       []CategoryNode `json:"categories"`
}

// Build groups the batch by category, subcategory and merchant.
// Amounts are sums of absolute values; children at every level are
// sorted by amount descending with name ascending breaking ties, so
// repeated folds of the same batch are byte-identical.
func Build(txns []models.Transaction, f Filter) *Tree {
	type merchantAcc struct {
		amount float64
		txns   []models.Transaction
	}
	type subAcc struct {
		amount    float64
		count     int
		merchants map[string]*merchantAcc
	}
	type catAcc struct {
		amount float64
		count  int
		subs   map[string]*subAcc
	}

	cats := make(map[string]*catAcc)
	tree := &Tree{}

	for _, tx := range txns {
		if !f.accepts(tx) {
			continue
		}
		amount := abs(tx.Amount)
		tree.GrandTotal += amount
		tree.TransactionCount++

		categoryID := tx.CategoryID
		if categoryID == "" {
			categoryID = models.CategoryOther
		}
		subcategoryID := tx.SubcategoryID
		if subcategoryID == "" {
			subcategoryID = models.SubcategoryUncategorized
		}
		merchant := tx.MerchantName
		if merchant == "" {
			merchant = UnspecifiedMerchant
		}

		ca := cats[categoryID]
		if ca == nil {
			ca = &catAcc{subs: make(map[string]*subAcc)}
			cats[categoryID] = ca
		}
		ca.amount += amount
		ca.count++

		sa := ca.subs[subcategoryID]
		if sa == nil {
			sa = &subAcc{merchants: make(map[string]*merchantAcc)}
			ca.subs[subcategoryID] = sa
		}
		sa.amount += amount
		sa.count++

		ma := sa.merchants[merchant]
		if ma == nil {
			ma = &merchantAcc{}
			sa.merchants[merchant] = ma
		}
		ma.amount += amount
		ma.txns = append(ma.txns, tx)
	}

	for categoryID, ca := range cats {
		node := CategoryNode{
			ID:                     categoryID,
			Name:                   categoryID,
			AmountTotal:            ca.amount,
			TransactionCount:       ca.count,
			PercentageOfParent:     percentage(ca.amount, tree.GrandTotal),
			PercentageOfGrandTotal: percentage(ca.amount, tree.GrandTotal),
		}
		if def := models.CategoryByID(categoryID); def != nil {
			node.Name = def.Name
			node.Icon = def.Icon
			node.Color = def.Color
		}

		for subcategoryID, sa := range ca.subs {
			sub := SubcategoryNode{
				ID:                     subcategoryID,
				Name:                   models.SubcategoryName(categoryID, subcategoryID),
				AmountTotal:            sa.amount,
				TransactionCount:       sa.count,
				PercentageOfParent:     percentage(sa.amount, ca.amount),
				PercentageOfGrandTotal: percentage(sa.amount, tree.GrandTotal),
			}
			for name, ma := range sa.merchants {
				sub.Merchants = append(sub.Merchants, MerchantNode{
					Name:                   name,
					AmountTotal:            ma.amount,
					TransactionCount:       len(ma.txns),
					PercentageOfParent:     percentage(ma.amount, sa.amount),
					PercentageOfGrandTotal: percentage(ma.amount, tree.GrandTotal),
					Transactions:           ma.txns,
				})
			}
			sortMerchants(sub.Merchants)
			node.Subcategories = append(node.Subcategories, sub)
		}
		sortSubcategories(node.Subcategories)
		tree.Categories = append(tree.Categories, node)
	}
	sortCategories(tree.Categories)
	return tree
}

// Category returns the subtree for a category id, or nil.
func (t *Tree) Category(categoryID string) *CategoryNode {
	for i := range t.Categories {
		if t.Categories[i].ID == categoryID {
			return &t.Categories[i]
		}
	}
	return nil
}

// Subcategory returns the subtree for a (category, subcategory) path,
// or nil. Merchant nodes below it carry the leaf transaction lists
// for the final drill-down click.
func (t *Tree) Subcategory(categoryID, subcategoryID string) *SubcategoryNode {
	cat := t.Category(categoryID)
	if cat == nil {
		return nil
	}
	for i := range cat.Subcategories {
		if cat.Subcategories[i].ID == subcategoryID {
			return &cat.Subcategories[i]
		}
	}
	return nil
}

func (f Filter) accepts(tx models.Transaction) bool {
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	switch f.Direction {
	case DirectionIncome:
		return tx.Amount > 0
	case DirectionExpense:
		return tx.Amount < 0
	default:
		return true
	}
}

func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sortCategories(nodes []CategoryNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].AmountTotal != nodes[j].AmountTotal {
			return nodes[i].AmountTotal > nodes[j].AmountTotal
		}
		return nodes[i].Name < nodes[j].Name
	})
}

func sortSubcategories(nodes []SubcategoryNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].AmountTotal != nodes[j].AmountTotal {
			return nodes[i].AmountTotal > nodes[j].AmountTotal
		}
		return nodes[i].Name < nodes[j].Name
	})
}

func sortMerchants(nodes []MerchantNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].AmountTotal != nodes[j].AmountTotal {
			return nodes[i].AmountTotal > nodes[j].AmountTotal
		}
		return nodes[i].Name < nodes[j].Name
	})
}
