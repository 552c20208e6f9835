// internal/analytics/analytics.go
package analytics

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xingluo6/redmart/internal/models"
	"github.com/xingluo6/redmart/internal/store"
)

const topN = 5

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type ProductPrice struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type StockAlert struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type UserLogin struct {
	Username  string `json:"username"`
	LastLogin string `json:"last_login"`
}

type ProductSales struct {
	Name       string `json:"name"`
	SalesCount int64  `json:"sales_count"`
}

type MonthlyRevenue struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Report is the full analytics summary for one run.
type Report struct {
	TotalProducts      int              `json:"total_products"`
	TotalCategories    int              `json:"total_categories"`
	TotalUsers         int              `json:"total_users"`
	TopCategories      []CategoryCount  `json:"top_categories"`
	TopPricedProducts  []ProductPrice   `json:"top_priced_products"`
	LowStockProducts   []StockAlert     `json:"low_stock_products"`
	RecentLogins       []UserLogin      `json:"recent_logins"`
	TopSellingProducts []ProductSales   `json:"top_selling_products"`
	MonthlySalesTrend  []MonthlyRevenue `json:"monthly_sales_trend"`
}

// Engine re-derives the summary from the store's current contents on every
// run; nothing is maintained incrementally. A store failure aborts the run
// with an error, never partial data.
type Engine struct {
	store store.Store
}

func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

func (e *Engine) Run(ctx context.Context) (*Report, error) {
	started := time.Now()
	report := &Report{}

	productIDs, err := e.store.SMembers(ctx, models.ProductAllIDsKey)
	if err != nil {
		return nil, err
	}
	report.TotalProducts = len(productIDs)

	keys := make([]string, len(productIDs))
	for i, id := range productIDs {
		keys[i] = models.ProductKey(id)
	}
	products, err := e.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, err
	}

	if err := e.categoryStats(ctx, report); err != nil {
		return nil, err
	}
	if err := e.topPriced(ctx, report); err != nil {
		return nil, err
	}
	e.lowStock(productIDs, products, report)
	if err := e.recentLogins(ctx, report); err != nil {
		return nil, err
	}
	if err := e.topSelling(ctx, productIDs, products, report); err != nil {
		return nil, err
	}
	if err := e.monthlyTrend(ctx, report); err != nil {
		return nil, err
	}

	logrus.WithField("duration", time.Since(started)).Debug("Analytics run complete")
	return report, nil
}

// categoryStats enumerates the category index keys; an empty category has no
// key and is invisible. Ties in the ranking break by category name ascending.
func (e *Engine) categoryStats(ctx context.Context, report *Report) error {
	keys, err := e.store.ScanKeys(ctx, models.CategoryKeyGlob)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(keys))
	counts := make([]CategoryCount, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSuffix(strings.TrimPrefix(key, "category:"), ":products")
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		card, err := e.store.SCard(ctx, key)
		if err != nil {
			return err
		}
		counts = append(counts, CategoryCount{Category: name, Count: card})
	}
	report.TotalCategories = len(counts)

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	report.TopCategories = head(counts, topN)
	return nil
}

func (e *Engine) topPriced(ctx context.Context, report *Report) error {
	ids, err := e.store.ZRevRange(ctx, models.ProductPricesKey, 0, topN-1)
	if err != nil {
		return err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = models.ProductKey(id)
	}
	records, err := e.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return err
	}
	report.TopPricedProducts = make([]ProductPrice, 0, len(records))
	for _, fields := range records {
		if len(fields) == 0 {
			continue
		}
		price, _ := strconv.ParseFloat(fields["price"], 64)
		report.TopPricedProducts = append(report.TopPricedProducts, ProductPrice{
			Name:  fields["name"],
			Price: price,
		})
	}
	return nil
}

// lowStock collects every product under the threshold; the result is not
// capped.
func (e *Engine) lowStock(ids []string, products []map[string]string, report *Report) {
	const threshold = 10
	for i, fields := range products {
		if len(fields) == 0 {
			continue
		}
		stock, _ := strconv.Atoi(fields["stock"])
		if stock < threshold {
			report.LowStockProducts = append(report.LowStockProducts, StockAlert{
				ID:    ids[i],
				Name:  fields["name"],
				Stock: stock,
			})
		}
	}
	sort.Slice(report.LowStockProducts, func(i, j int) bool {
		return report.LowStockProducts[i].ID < report.LowStockProducts[j].ID
	})
}

// recentLogins ranks users by last_login compared as ISO-8601 strings, which
// matches chronological order only for well-formed timestamps.
func (e *Engine) recentLogins(ctx context.Context, report *Report) error {
	ids, err := e.store.SMembers(ctx, models.UserAllIDsKey)
	if err != nil {
		return err
	}
	report.TotalUsers = len(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = models.UserKey(id)
	}
	records, err := e.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return err
	}

	logins := make([]UserLogin, 0, len(records))
	for _, fields := range records {
		if len(fields) == 0 || fields["last_login"] == "" || fields["username"] == "" {
			continue
		}
		logins = append(logins, UserLogin{
			Username:  fields["username"],
			LastLogin: fields["last_login"],
		})
	}
	sort.Slice(logins, func(i, j int) bool { return logins[i].LastLogin > logins[j].LastLogin })
	report.RecentLogins = head(logins, topN)
	return nil
}

// topSelling ranks products by sales-ledger length. Ledger entries are never
// pruned on order deletion, so this counts historical item references.
func (e *Engine) topSelling(ctx context.Context, ids []string, products []map[string]string, report *Report) error {
	type salesCount struct {
		id    string
		name  string
		count int64
	}
	counts := make([]salesCount, 0, len(ids))
	for i, id := range ids {
		length, err := e.store.LLen(ctx, models.ProductSalesKey(id))
		if err != nil {
			return err
		}
		name := ""
		if len(products[i]) > 0 {
			name = products[i]["name"]
		}
		counts = append(counts, salesCount{id: id, name: name, count: length})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].id < counts[j].id
	})
	for _, c := range head(counts, topN) {
		report.TopSellingProducts = append(report.TopSellingProducts, ProductSales{
			Name:       c.name,
			SalesCount: c.count,
		})
	}
	return nil
}

// monthlyTrend groups orders by the YYYY-MM prefix of order_date and sums
// total_amount. Rows with an unparseable date or amount are skipped.
func (e *Engine) monthlyTrend(ctx context.Context, report *Report) error {
	ids, err := e.store.SMembers(ctx, models.OrderAllIDsKey)
	if err != nil {
		return err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = models.OrderKey(id)
	}
	records, err := e.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return err
	}

	monthly := make(map[string]float64)
	for _, fields := range records {
		if len(fields) == 0 {
			continue
		}
		t, ok := parseOrderDate(fields["order_date"])
		if !ok {
			continue
		}
		amount, err := strconv.ParseFloat(fields["total_amount"], 64)
		if err != nil {
			continue
		}
		monthly[t.Format("2006-01")] += amount
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	report.MonthlySalesTrend = make([]MonthlyRevenue, 0, len(months))
	for _, m := range months {
		report.MonthlySalesTrend = append(report.MonthlySalesTrend, MonthlyRevenue{Month: m, Amount: monthly[m]})
	}
	return nil
}

// parseOrderDate accepts the ISO-8601 shapes the ingestion pipelines emit,
// with or without a time component.
func parseOrderDate(s string) (time.Time, bool) {
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
