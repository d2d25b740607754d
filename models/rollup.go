package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownLabel stands in for a grouping key whose related record is missing,
// e.g. a line item whose employee profile was removed. Reports must keep
// aggregating instead of failing on a dangling reference.
const UnknownLabel = "Unknown"

// Bucket is one rollup group: a key with the number of rows that mapped to
// it and the sum of their amounts.
type Bucket struct {
	Key   string          `json:"key"`
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}

// Average returns Sum/Count rounded to 2 decimal places, or zero for an
// empty bucket.
func (b Bucket) Average() decimal.Decimal {
	if b.Count == 0 {
		return decimal.Zero
	}
	return b.Sum.Div(decimal.NewFromInt(int64(b.Count))).Round(2)
}

// GroupVisits rolls up visits by the given key, summing each visit's final
// amount. Buckets come back in first-seen order, so chronologically sorted
// input yields chronologically ordered buckets.
func GroupVisits(visits []Visit, key func(Visit) string) []Bucket {
	byKey := make(map[string]int)

	buckets := make([]Bucket, 0)
	for _, v := range visits {
		k := key(v)
		idx, ok := byKey[k]
		if !ok {
			idx = len(buckets)
			byKey[k] = idx
			buckets = append(buckets, Bucket{Key: k, Sum: decimal.Zero})
		}
		buckets[idx].Count++
		buckets[idx].Sum = buckets[idx].Sum.Add(v.FinalAmount)
	}
	return buckets
}

// GroupLineItems rolls up visit line items by the given key, summing the
// price snapshot of each item. Buckets come back in first-seen order.
func GroupLineItems(items []VisitService, key func(VisitService) string) []Bucket {
	byKey := make(map[string]int)

	buckets := make([]Bucket, 0)
	for _, it := range items {
		k := key(it)
		idx, ok := byKey[k]
		if !ok {
			idx = len(buckets)
			byKey[k] = idx
			buckets = append(buckets, Bucket{Key: k, Sum: decimal.Zero})
		}
		buckets[idx].Count++
		buckets[idx].Sum = buckets[idx].Sum.Add(it.Price)
	}
	return buckets
}

// SortBySumDesc orders buckets by descending sum. The sort is stable so
// equal sums keep their first-seen order.
func SortBySumDesc(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Sum.GreaterThan(buckets[j].Sum)
	})
}

// SortByKeyAsc orders buckets by ascending key, used for hour-of-day rollups.
func SortByKeyAsc(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Key < buckets[j].Key
	})
}

// TopBucket returns the bucket with the largest sum. Ties resolve to the
// first-seen bucket, which keeps "best service" and "best employee" stable
// across identical inputs.
func TopBucket(buckets []Bucket) (Bucket, bool) {
	if len(buckets) == 0 {
		return Bucket{}, false
	}
	top := buckets[0]
	for _, b := range buckets[1:] {
		if b.Sum.GreaterThan(top.Sum) {
			top = b
		}
	}
	return top, true
}

// TotalOf sums all bucket sums.
func TotalOf(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Sum)
	}
	return total
}

// GrowthRate returns (current-previous)/previous*100, or 0 when the
// previous period had no revenue.
func GrowthRate(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	rate, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return rate
}

// RetentionRate returns returning/(new+returning)*100, or 0 when no
// customers fall in range. The result is always within [0, 100].
func RetentionRate(newCustomers, returningCustomers int) float64 {
	total := newCustomers + returningCustomers
	if total == 0 {
		return 0
	}
	return float64(returningCustomers) / float64(total) * 100
}

// RetentionBreakdown classifies the distinct customers seen in the in-range
// visits. A customer is new when their earliest recorded visit falls at or
// after the window start, returning otherwise. Customers are keyed by phone;
// anonymous visits without a phone cannot be tracked and are skipped.
func RetentionBreakdown(inRange []Visit, earliestByPhone map[string]time.Time, windowStart time.Time) (newCustomers, returningCustomers int) {
	seen := make(map[string]bool)
	for _, v := range inRange {
		phone := v.CustomerPhone
		if phone == "" || seen[phone] {
			continue
		}
		seen[phone] = true
		earliest, ok := earliestByPhone[phone]
		if !ok || !earliest.Before(windowStart) {
			newCustomers++
		} else {
			returningCustomers++
		}
	}
	return newCustomers, returningCustomers
}

// CustomerSuggestion pairs a customer's most recent recorded name with
// their phone number for the walk-in form lookup.
type CustomerSuggestion struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DedupeSuggestions collapses most-recent-first visit rows into one
// suggestion per phone number. Because input is ordered newest first, the
// surviving name is the customer's most recent recorded one.
func DedupeSuggestions(visits []Visit) []CustomerSuggestion {
	seen := make(map[string]bool)
	suggestions := make([]CustomerSuggestion, 0, len(visits))
	for _, v := range visits {
		if v.CustomerPhone == "" || seen[v.CustomerPhone] {
			continue
		}
		seen[v.CustomerPhone] = true
		suggestions = append(suggestions, CustomerSuggestion{Name: v.CustomerName, Phone: v.CustomerPhone})
	}
	return suggestions
}

// CustomerRollup is the per-customer summary shown on the customers screen.
type CustomerRollup struct {
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Visits       int             `json:"visits"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	AverageSpent decimal.Decimal `json:"averageSpent"`
	LastVisit    time.Time       `json:"lastVisit"`
	Services     []string        `json:"services"`
}

// CustomerRollups aggregates visits (with line items preloaded) into one
// summary per phone number, ordered by descending total spend. Anonymous
// visits are skipped. The name shown is the latest one on record.
func CustomerRollups(visits []Visit) []CustomerRollup {
	byPhone := make(map[string]int)
	servicesSeen := make(map[string]map[string]bool)

	rollups := make([]CustomerRollup, 0)
	for _, v := range visits {
		if v.CustomerPhone == "" {
			continue
		}
		idx, ok := byPhone[v.CustomerPhone]
		if !ok {
			idx = len(rollups)
			byPhone[v.CustomerPhone] = idx
			rollups = append(rollups, CustomerRollup{
				Phone:      v.CustomerPhone,
				TotalSpent: decimal.Zero,
				Services:   []string{},
			})
			servicesSeen[v.CustomerPhone] = make(map[string]bool)
		}
		r := &rollups[idx]
		r.Visits++
		r.TotalSpent = r.TotalSpent.Add(v.FinalAmount)
		if !v.CheckInAt.Before(r.LastVisit) {
			r.LastVisit = v.CheckInAt
			r.Name = v.CustomerName
		}
		for _, it := range v.Items {
			if !servicesSeen[v.CustomerPhone][it.ServiceName] {
				servicesSeen[v.CustomerPhone][it.ServiceName] = true
				r.Services = append(r.Services, it.ServiceName)
			}
		}
	}

	for i := range rollups {
		rollups[i].AverageSpent = Bucket{Count: rollups[i].Visits, Sum: rollups[i].TotalSpent}.Average()
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		return rollups[i].TotalSpent.GreaterThan(rollups[j].TotalSpent)
	})
	return rollups
}
