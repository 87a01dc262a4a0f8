package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"finlens/internal/models"
	"finlens/internal/narration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDataset(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Greater(t, c.Size(), 50)
	assert.True(t, c.ContainsAlias("swiggy"))
	assert.True(t, c.ContainsAlias("SWIGGY"))
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/merchants.json")
	assert.Error(t, err)
}

func TestLoadRejectsEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merchants.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"merchants": []}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merchants.json")
	data := `{"merchants": [{"canonical_name": "X", "category_id": "nope", "subcategory_id": "y", "aliases": ["x"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNormalizeAlias(t *testing.T) {
	assert.Equal(t, "swiggy", NormalizeAlias("SWIGGY"))
	assert.Equal(t, "amazonpay", NormalizeAlias("Amazon Pay"))
	assert.Equal(t, "bigbasket", NormalizeAlias("big-basket!"))
	assert.Equal(t, "", NormalizeAlias("---"))
}

func TestLookupSingleToken(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	seg := narration.Segment("UPI-SWIGGY-SWIGGY@YBL-YESB0YBLUPI-437276589036")
	m := c.Lookup(seg.Tokens)
	require.NotNil(t, m)
	assert.Equal(t, "Swiggy", m.Entry.CanonicalName)
	assert.Equal(t, models.CategoryFoodDining, m.Entry.CategoryID)
}

func TestLookupTokenPair(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	seg := narration.Segment("POS 416021XXXXXX9041 BIG BASKET BANGALORE")
	m := c.Lookup(seg.Tokens)
	require.NotNil(t, m)
	assert.Equal(t, "BigBasket", m.Entry.CanonicalName)
}

func TestLookupMissReturnsNil(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	seg := narration.Segment("NEFT CR-CITI0000003-EMPLOYER NAME-SALARY")
	assert.Nil(t, c.Lookup(seg.Tokens))
}

func TestStoreReplaceIsVisibleToReaders(t *testing.T) {
	first, err := Load("")
	require.NoError(t, err)
	store := NewStore(first)
	assert.Same(t, first, store.Current())

	path := filepath.Join(t.TempDir(), "merchants.json")
	data := `{"merchants": [{"canonical_name": "Only One", "category_id": "other", "subcategory_id": "uncategorized", "aliases": ["onlyone"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	second, err := Load(path)
	require.NoError(t, err)
	store.Replace(second)

	assert.Same(t, second, store.Current())
	assert.True(t, store.ContainsAlias("onlyone"))
	assert.False(t, store.ContainsAlias("swiggy"))
}
