// internal/ingest/retail_test.go
package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRetailCSV = `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,6,12/1/2010 8:26,2.55,17850,United Kingdom
536365,71053,WHITE METAL LANTERN,2,12/1/2010 8:26,3.39,17850,United Kingdom
536366,85123A,WHITE HANGING HEART,4,12/1/2010 8:28,2.75,13047,France
C536367,71053,WHITE METAL LANTERN,1,12/1/2010 8:30,3.39,17850,United Kingdom
536368,22728,ALARM CLOCK RED,-2,12/1/2010 8:34,3.75,13047,France
536369,22729,ALARM CLOCK GREEN,1,12/1/2010 8:35,0,13047,France
536370,22730,ALARM CLOCK BLUE,1,12/1/2010 8:36,4.25,,France
`

func TestParseRetailProducts(t *testing.T) {
	ds, err := parseRetail(strings.NewReader(sampleRetailCSV), RetailOptions{})
	require.NoError(t, err)

	// 85123A and 71053 survive cleaning; negative quantity, zero price and
	// missing customer rows are dropped.
	require.Len(t, ds.Products, 2)

	byID := map[string]float64{}
	for _, p := range ds.Products {
		byID[p.ID] = p.Price
	}
	// Mean of 2.55 and 2.75.
	assert.InDelta(t, 2.65, byID["85123A"], 1e-9)
	assert.InDelta(t, 3.39, byID["71053"], 1e-9)
}

func TestParseRetailUsersAreDistinct(t *testing.T) {
	ds, err := parseRetail(strings.NewReader(sampleRetailCSV), RetailOptions{})
	require.NoError(t, err)

	ids := make([]string, 0, len(ds.Users))
	for _, u := range ds.Users {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []string{"17850", "13047"}, ids)
}

func TestParseRetailOrdersGroupByInvoice(t *testing.T) {
	ds, err := parseRetail(strings.NewReader(sampleRetailCSV), RetailOptions{})
	require.NoError(t, err)

	// The credit note C536367 is excluded.
	require.Len(t, ds.Orders, 2)

	first := ds.Orders[0]
	assert.Equal(t, "536365", first.ID)
	assert.Equal(t, "17850", first.UserID)
	assert.Equal(t, "United Kingdom", first.Country)
	assert.Equal(t, "2010-12-01T08:26:00", first.OrderDate)
	assert.InDelta(t, 6*2.55+2*3.39, first.TotalAmount, 1e-9)

	// Items keep source row order.
	require.Len(t, first.Items, 2)
	assert.Equal(t, "85123A", first.Items[0].ProductRef)
	assert.Equal(t, "71053", first.Items[1].ProductRef)
	assert.Equal(t, 0, first.Items[0].Index)
	assert.Equal(t, 1, first.Items[1].Index)
}

func TestParseRetailFillMissing(t *testing.T) {
	ds, err := parseRetail(strings.NewReader(sampleRetailCSV), RetailOptions{FillMissing: true, Seed: 1})
	require.NoError(t, err)

	for _, p := range ds.Products {
		assert.NotEmpty(t, p.Description)
		assert.Contains(t, Categories, p.Category)
		assert.GreaterOrEqual(t, p.Stock, 50)
	}
	for _, u := range ds.Users {
		assert.NotEmpty(t, u.Username)
		assert.NotEmpty(t, u.Email)
	}
}

func TestParseRetailWithoutFillUsesDefaults(t *testing.T) {
	ds, err := parseRetail(strings.NewReader(sampleRetailCSV), RetailOptions{})
	require.NoError(t, err)

	for _, p := range ds.Products {
		assert.Equal(t, "unknown", p.Category)
		assert.Zero(t, p.Stock)
	}
	for _, u := range ds.Users {
		assert.Equal(t, "anonymous", u.Username)
		assert.Empty(t, u.Email)
	}
}

func TestParseRetailMissingColumn(t *testing.T) {
	_, err := parseRetail(strings.NewReader("InvoiceNo,StockCode\n1,2\n"), RetailOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}
