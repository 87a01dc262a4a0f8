package hierarchy

import (
	"math"
	"testing"
	"time"

	"finlens/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(date string, amount float64, categoryID, subcategoryID, merchant string) models.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return models.Transaction{
		ID:            uuid.New(),
		Date:          d,
		Amount:        amount,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		MerchantName:  merchant,
	}
}

func sampleBatch() []models.Transaction {
	return []models.Transaction{
		tx("2026-01-05", -849, models.CategoryFoodDining, "food_delivery", "Swiggy"),
		tx("2026-01-08", -412, models.CategoryFoodDining, "food_delivery", "Zomato"),
		tx("2026-01-12", -1875.5, models.CategoryFoodDining, "groceries", "BigBasket"),
		tx("2026-01-15", 85000, models.CategoryIncome, models.SubcategorySalary, ""),
		tx("2026-01-20", -18000, models.CategoryTransfers, "imps_transfer", ""),
		tx("2026-02-02", -649, models.CategoryEntertainment, "streaming", "Netflix"),
	}
}

func TestBuildGroupsByCategorySubcategoryMerchant(t *testing.T) {
	tree := Build(sampleBatch(), Filter{Direction: DirectionAll})

	assert.Equal(t, 6, tree.TransactionCount)
	assert.InDelta(t, 849+412+1875.5+85000+18000+649, tree.GrandTotal, 1e-9)

	food := tree.Category(models.CategoryFoodDining)
	require.NotNil(t, food)
	assert.Equal(t, 3, food.TransactionCount)
	assert.InDelta(t, 849+412+1875.5, food.AmountTotal, 1e-9)

	delivery := tree.Subcategory(models.CategoryFoodDining, "food_delivery")
	require.NotNil(t, delivery)
	require.Len(t, delivery.Merchants, 2)
	// Descending by amount: Swiggy above Zomato.
	assert.Equal(t, "Swiggy", delivery.Merchants[0].Name)
	assert.Equal(t, "Zomato", delivery.Merchants[1].Name)
}

func TestBuildChildrenSumToParent(t *testing.T) {
	tree := Build(sampleBatch(), Filter{Direction: DirectionAll})

	var catSum float64
	for _, cat := range tree.Categories {
		catSum += cat.AmountTotal

		var subSum float64
		for _, sub := range cat.Subcategories {
			subSum += sub.AmountTotal

			var mSum float64
			for _, m := range sub.Merchants {
				mSum += m.AmountTotal
			}
			assert.InEpsilon(t, sub.AmountTotal, mSum, 1e-6)
		}
		assert.InEpsilon(t, cat.AmountTotal, subSum, 1e-6)
	}
	assert.InEpsilon(t, tree.GrandTotal, catSum, 1e-6)
}

func TestBuildSiblingPercentagesSumToHundred(t *testing.T) {
	tree := Build(sampleBatch(), Filter{Direction: DirectionAll})
	require.NotEmpty(t, tree.Categories)

	var pct float64
	for _, cat := range tree.Categories {
		pct += cat.PercentageOfParent
	}
	assert.InDelta(t, 100, pct, 0.1)

	for _, cat := range tree.Categories {
		var subPct float64
		for _, sub := range cat.Subcategories {
			subPct += sub.PercentageOfParent
		}
		assert.InDelta(t, 100, subPct, 0.1)
	}
}

func TestBuildUsesUnspecifiedMerchantBucket(t *testing.T) {
	tree := Build(sampleBatch(), Filter{Direction: DirectionAll})

	sub := tree.Subcategory(models.CategoryTransfers, "imps_transfer")
	require.NotNil(t, sub)
	require.Len(t, sub.Merchants, 1)
	assert.Equal(t, UnspecifiedMerchant, sub.Merchants[0].Name)
	assert.Len(t, sub.Merchants[0].Transactions, 1)
}

func TestBuildDirectionFilter(t *testing.T) {
	income := Build(sampleBatch(), Filter{Direction: DirectionIncome})
	assert.Equal(t, 1, income.TransactionCount)
	assert.InDelta(t, 85000, income.GrandTotal, 1e-9)

	expense := Build(sampleBatch(), Filter{Direction: DirectionExpense})
	assert.Equal(t, 5, expense.TransactionCount)
	assert.Nil(t, expense.Category(models.CategoryIncome))
}

func TestBuildDateRangeFilter(t *testing.T) {
	from, _ := time.Parse("2006-01-02", "2026-02-01")
	tree := Build(sampleBatch(), Filter{From: from, Direction: DirectionAll})

	assert.Equal(t, 1, tree.TransactionCount)
	require.NotNil(t, tree.Category(models.CategoryEntertainment))
}

func TestBuildEmptyBatch(t *testing.T) {
	tree := Build(nil, Filter{Direction: DirectionAll})

	assert.Zero(t, tree.GrandTotal)
	assert.Zero(t, tree.TransactionCount)
	assert.Empty(t, tree.Categories)
}

func TestBuildIsDeterministic(t *testing.T) {
	first := Build(sampleBatch(), Filter{Direction: DirectionAll})
	for i := 0; i < 5; i++ {
		again := Build(sampleBatch(), Filter{Direction: DirectionAll})
		require.Equal(t, len(first.Categories), len(again.Categories))
		for j := range first.Categories {
			assert.Equal(t, first.Categories[j].ID, again.Categories[j].ID)
			assert.True(t, math.Abs(first.Categories[j].AmountTotal-again.Categories[j].AmountTotal) < 1e-9)
		}
	}
}
