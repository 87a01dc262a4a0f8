package dto

import "finlens/internal/hierarchy"

// HierarchyResponse wraps the aggregated drill-down tree together
// with the filter that produced it.
type HierarchyResponse struct {
	From      string          `json:"from,omitempty"`
	To        string          `json:"to,omitempty"`
	Direction string          `json:"direction"`
	Tree      *hierarchy.Tree `json:"tree"`
}

type CategoryDrilldownResponse struct {
	Category *hierarchy.CategoryNode `json:"category"`
}

type SubcategoryDrilldownResponse struct {
	Subcategory  *hierarchy.SubcategoryNode `json:"subcategory"`
	Transactions []TransactionResponse      `json:"transactions"`
}
