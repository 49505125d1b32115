package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/pkg/utils"
)

const (
	topStoresLimit    = 5
	trendMonths       = 6
	searchableDivider = "\x00"
)

// TotalRevenue soma total_amount de todos os pedidos
func TotalRevenue(orders []*domain.Order) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalAmount)
	}
	return total
}

// StatusBuckets sempre retorna as cinco chaves do enum, mesmo com contagem zero
func StatusBuckets(orders []*domain.Order) map[domain.OrderStatus]domain.StatusBucket {
	buckets := make(map[domain.OrderStatus]domain.StatusBucket, len(domain.OrderStatuses))
	for _, status := range domain.OrderStatuses {
		buckets[status] = domain.StatusBucket{Revenue: decimal.Zero}
	}

	for _, order := range orders {
		bucket, ok := buckets[order.Status]
		if !ok {
			continue
		}
		bucket.Count++
		bucket.Revenue = bucket.Revenue.Add(order.TotalAmount)
		buckets[order.Status] = bucket
	}

	return buckets
}

func CountByStatus(orders []*domain.Order, statuses ...domain.OrderStatus) int {
	count := 0
	for _, order := range orders {
		for _, status := range statuses {
			if order.Status == status {
				count++
				break
			}
		}
	}
	return count
}

// FilterByMonth considera a data do pedido no fuso informado
func FilterByMonth(orders []*domain.Order, year int, month time.Month, loc *time.Location) []*domain.Order {
	filtered := make([]*domain.Order, 0)
	for _, order := range orders {
		date := order.OrderDate.In(loc)
		if date.Year() == year && date.Month() == month {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

func InCurrentMonth(orders []*domain.Order, now time.Time, loc *time.Location) []*domain.Order {
	local := now.In(loc)
	return FilterByMonth(orders, local.Year(), local.Month(), loc)
}

func FilterByYear(orders []*domain.Order, year int, loc *time.Location) []*domain.Order {
	filtered := make([]*domain.Order, 0)
	for _, order := range orders {
		if order.OrderDate.In(loc).Year() == year {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// FilterByPeriod aplica thisMonth, lastMonth, thisYear ou all
func FilterByPeriod(orders []*domain.Order, period domain.ReportPeriod, now time.Time, loc *time.Location) []*domain.Order {
	local := now.In(loc)

	switch period {
	case domain.ReportPeriodThisMonth:
		return FilterByMonth(orders, local.Year(), local.Month(), loc)
	case domain.ReportPeriodLastMonth:
		previous := utils.PreviousMonth(local)
		return FilterByMonth(orders, previous.Year(), previous.Month(), loc)
	case domain.ReportPeriodThisYear:
		return FilterByYear(orders, local.Year(), loc)
	default:
		return orders
	}
}

func FilterByStore(orders []*domain.Order, storeID string) []*domain.Order {
	filtered := make([]*domain.Order, 0)
	for _, order := range orders {
		if order.StoreID == storeID {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// StoreStats agrega por loja. Lojas sem pedidos entram com zero; a ordem é receita desc e nome asc no empate.
func StoreStats(orders []*domain.Order, stores []*domain.Store) []domain.StoreStat {
	byStore := make(map[string]*domain.StoreStat, len(stores))
	for _, store := range stores {
		byStore[store.ID] = &domain.StoreStat{
			StoreID:           store.ID,
			StoreName:         store.Name,
			Revenue:           decimal.Zero,
			AverageOrderValue: decimal.Zero,
		}
	}

	for _, order := range orders {
		stat, ok := byStore[order.StoreID]
		if !ok {
			name := ""
			if order.Store != nil {
				name = order.Store.Name
			}
			stat = &domain.StoreStat{StoreID: order.StoreID, StoreName: name, Revenue: decimal.Zero}
			byStore[order.StoreID] = stat
		}
		stat.OrderCount++
		stat.Revenue = stat.Revenue.Add(order.TotalAmount)
	}

	stats := make([]domain.StoreStat, 0, len(byStore))
	for _, stat := range byStore {
		stat.AverageOrderValue = average(stat.Revenue, stat.OrderCount)
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].StoreName < stats[j].StoreName
	})

	return stats
}

// MonthlyTrend devolve os últimos meses, do mais antigo para o atual
func MonthlyTrend(orders []*domain.Order, months int, now time.Time, loc *time.Location) []domain.MonthlyTrendPoint {
	current := utils.FirstDayOfMonth(now.In(loc))
	trend := make([]domain.MonthlyTrendPoint, 0, months)

	for i := months - 1; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)
		monthOrders := FilterByMonth(orders, month.Year(), month.Month(), loc)
		trend = append(trend, domain.MonthlyTrendPoint{
			Month:   utils.MonthKey(month),
			Orders:  len(monthOrders),
			Revenue: TotalRevenue(monthOrders),
		})
	}

	return trend
}

// SearchOrders busca sem diferenciar maiúsculas no id, cliente, loja, vendedor e produtos
func SearchOrders(orders []*domain.Order, term string) []*domain.Order {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return orders
	}

	found := make([]*domain.Order, 0)
	for _, order := range orders {
		if strings.Contains(searchableText(order), needle) {
			found = append(found, order)
		}
	}
	return found
}

func searchableText(order *domain.Order) string {
	parts := []string{order.ID}
	if order.Customer != nil {
		parts = append(parts, order.Customer.Name)
	}
	if order.Store != nil {
		parts = append(parts, order.Store.Name)
	}
	if order.SalesRep != nil {
		parts = append(parts, order.SalesRep.Name)
	}
	for _, item := range order.Items {
		parts = append(parts, item.ProductName)
	}
	// o divisor impede que o termo case na junção de dois campos
	return strings.ToLower(strings.Join(parts, searchableDivider))
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

func visitsInMonth(visits []*domain.FieldVisit, now time.Time, loc *time.Location) int {
	count := 0
	for _, visit := range visits {
		if utils.SameMonth(visit.VisitDate, now, loc) {
			count++
		}
	}
	return count
}
