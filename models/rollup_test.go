package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func visitAt(day string, phone, name, method string, amount string) Visit {
	t, err := time.Parse("2006-01-02 15:04", day)
	if err != nil {
		panic(err)
	}
	return Visit{
		CustomerName:  name,
		CustomerPhone: phone,
		CheckInAt:     t,
		FinalAmount:   d(amount),
		PaymentMethod: method,
	}
}

func TestGroupVisitsSumsMatchUngroupedTotal(t *testing.T) {
	visits := []Visit{
		visitAt("2025-03-01 10:00", "911", "Asha", "cash", "100.00"),
		visitAt("2025-03-01 12:00", "922", "Binu", "card", "250.50"),
		visitAt("2025-03-02 11:00", "911", "Asha", "upi", "75.25"),
		visitAt("2025-03-03 16:00", "", "Walk-in", "cash", "40.00"),
	}

	ungrouped := decimal.Zero
	for _, v := range visits {
		ungrouped = ungrouped.Add(v.FinalAmount)
	}

	keys := map[string]func(Visit) string{
		"date":    func(v Visit) string { return v.CheckInAt.Format("2006-01-02") },
		"payment": func(v Visit) string { return v.PaymentMethod },
		"phone":   func(v Visit) string { return v.CustomerPhone },
	}

	for name, key := range keys {
		buckets := GroupVisits(visits, key)
		assert.True(t, TotalOf(buckets).Equal(ungrouped), "grouping by %s changed the total", name)
	}
}

func TestGroupVisitsPreservesFirstSeenOrder(t *testing.T) {
	visits := []Visit{
		visitAt("2025-03-01 10:00", "911", "Asha", "cash", "10.00"),
		visitAt("2025-03-02 10:00", "911", "Asha", "cash", "20.00"),
		visitAt("2025-03-01 18:00", "922", "Binu", "cash", "30.00"),
	}

	buckets := GroupVisits(visits, func(v Visit) string { return v.CheckInAt.Format("2006-01-02") })

	require.Len(t, buckets, 2)
	assert.Equal(t, "2025-03-01", buckets[0].Key)
	assert.Equal(t, 2, buckets[0].Count)
	assert.True(t, buckets[0].Sum.Equal(d("40.00")))
	assert.Equal(t, "2025-03-02", buckets[1].Key)
}

func TestGroupLineItemsSumsPriceSnapshots(t *testing.T) {
	items := []VisitService{
		{ServiceName: "Haircut", Price: d("20.00")},
		{ServiceName: "Haircut", Price: d("25.00")}, // price changed later, snapshot differs
		{ServiceName: "Shave", Price: d("10.00")},
	}

	buckets := GroupLineItems(items, func(it VisitService) string { return it.ServiceName })

	require.Len(t, buckets, 2)
	assert.Equal(t, "Haircut", buckets[0].Key)
	assert.Equal(t, 2, buckets[0].Count)
	assert.True(t, buckets[0].Sum.Equal(d("45.00")))
}

func TestBucketAverage(t *testing.T) {
	assert.True(t, Bucket{Count: 2, Sum: d("41.00")}.Average().Equal(d("20.50")))
	assert.True(t, Bucket{}.Average().Equal(decimal.Zero), "empty bucket must average to zero, not divide by zero")
}

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 50.0, GrowthRate(d("150.00"), d("100.00")))
	assert.Equal(t, -25.0, GrowthRate(d("75.00"), d("100.00")))
	assert.Equal(t, 0.0, GrowthRate(d("150.00"), decimal.Zero), "no previous revenue means zero growth")
}

func TestRetentionRateBounds(t *testing.T) {
	assert.Equal(t, 0.0, RetentionRate(0, 0))
	assert.Equal(t, 100.0, RetentionRate(0, 5))
	assert.Equal(t, 0.0, RetentionRate(5, 0))

	rate := RetentionRate(3, 7)
	assert.GreaterOrEqual(t, rate, 0.0)
	assert.LessOrEqual(t, rate, 100.0)
	assert.InDelta(t, 70.0, rate, 0.001)
}

func TestRetentionBreakdown(t *testing.T) {
	windowStart, _ := time.Parse("2006-01-02", "2025-03-01")

	inRange := []Visit{
		visitAt("2025-03-02 10:00", "911", "Asha", "cash", "10.00"),
		visitAt("2025-03-03 10:00", "911", "Asha", "cash", "10.00"), // same customer counted once
		visitAt("2025-03-02 12:00", "922", "Binu", "cash", "10.00"),
		visitAt("2025-03-04 12:00", "", "Walk-in", "cash", "10.00"), // anonymous, skipped
	}
	earliest := map[string]time.Time{
		"911": mustTime("2025-01-15 10:00"), // before window: returning
		"922": mustTime("2025-03-02 12:00"), // first visit in window: new
	}

	newCustomers, returning := RetentionBreakdown(inRange, earliest, windowStart)
	assert.Equal(t, 1, newCustomers)
	assert.Equal(t, 1, returning)
}

func mustTime(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTopBucketFirstSeenWinsOnTie(t *testing.T) {
	buckets := []Bucket{
		{Key: "Haircut", Count: 3, Sum: d("90.00")},
		{Key: "Facial", Count: 1, Sum: d("90.00")},
		{Key: "Shave", Count: 2, Sum: d("40.00")},
	}

	top, ok := TopBucket(buckets)
	require.True(t, ok)
	assert.Equal(t, "Haircut", top.Key)

	_, ok = TopBucket(nil)
	assert.False(t, ok)
}

func TestSortBySumDescIsStable(t *testing.T) {
	buckets := []Bucket{
		{Key: "a", Sum: d("10.00")},
		{Key: "b", Sum: d("30.00")},
		{Key: "c", Sum: d("30.00")},
	}

	SortBySumDesc(buckets)

	assert.Equal(t, []string{"b", "c", "a"}, []string{buckets[0].Key, buckets[1].Key, buckets[2].Key})
}

func TestSortByKeyAsc(t *testing.T) {
	buckets := []Bucket{
		{Key: "17:00"},
		{Key: "09:00"},
		{Key: "12:00"},
	}

	SortByKeyAsc(buckets)

	assert.Equal(t, "09:00", buckets[0].Key)
	assert.Equal(t, "17:00", buckets[2].Key)
}

func TestDedupeSuggestions(t *testing.T) {
	// Most-recent-first input, as the lookup query returns it
	visits := []Visit{
		visitAt("2025-03-05 10:00", "9876543210", "Asha K", "cash", "10.00"),
		visitAt("2025-03-01 10:00", "9876543210", "Asha", "cash", "10.00"),
		visitAt("2025-02-20 10:00", "9876500000", "Binu", "cash", "10.00"),
		visitAt("2025-02-10 10:00", "", "Walk-in", "cash", "10.00"),
	}

	suggestions := DedupeSuggestions(visits)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "Asha K", suggestions[0].Name, "most recent recorded name wins")
	assert.Equal(t, "9876543210", suggestions[0].Phone)
	assert.Equal(t, "Binu", suggestions[1].Name)
}

func TestCustomerRollups(t *testing.T) {
	v1 := visitAt("2025-03-01 10:00", "911", "Asha", "cash", "100.00")
	v1.Items = []VisitService{{ServiceName: "Haircut"}, {ServiceName: "Facial"}}
	v2 := visitAt("2025-03-05 10:00", "911", "Asha K", "card", "50.00")
	v2.Items = []VisitService{{ServiceName: "Haircut"}}
	v3 := visitAt("2025-03-02 10:00", "922", "Binu", "cash", "60.00")
	v3.Items = []VisitService{{ServiceName: "Shave"}}
	anon := visitAt("2025-03-03 10:00", "", "Walk-in", "cash", "500.00")

	rollups := CustomerRollups([]Visit{v1, v2, v3, anon})

	require.Len(t, rollups, 2, "anonymous visits are excluded")

	asha := rollups[0]
	assert.Equal(t, "911", asha.Phone)
	assert.Equal(t, "Asha K", asha.Name, "latest recorded name wins")
	assert.Equal(t, 2, asha.Visits)
	assert.True(t, asha.TotalSpent.Equal(d("150.00")))
	assert.True(t, asha.AverageSpent.Equal(d("75.00")))
	assert.Equal(t, v2.CheckInAt, asha.LastVisit)
	assert.ElementsMatch(t, []string{"Haircut", "Facial"}, asha.Services)

	assert.Equal(t, "922", rollups[1].Phone, "ordered by descending total spend")
}
