package report

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func TestConsolidate(t *testing.T) {
	rows := []ItemRow{
		{Code: "A", Description: "Produto A", Quantity: 3, RecordCount: 1, UserName: "X"},
		{Code: "A", Description: "Produto A", Quantity: 2, RecordCount: 2, UserName: "Y"},
		{Code: "B", Description: "Produto B", Quantity: 5, RecordCount: 1, UserName: "X"},
	}

	result := Consolidate(rows)

	if len(result) != 2 {
		t.Fatalf("got %d rows, want 2", len(result))
	}

	// Lexical order: A before B
	if result[0].Code != "A" || result[1].Code != "B" {
		t.Errorf("order = %s, %s; want A, B", result[0].Code, result[1].Code)
	}

	if result[0].Quantity != 5 {
		t.Errorf("A quantity = %v, want 5", result[0].Quantity)
	}
	if !reflect.DeepEqual(result[0].Contributors, []string{"X", "Y"}) {
		t.Errorf("A contributors = %v, want [X Y]", result[0].Contributors)
	}
	if result[0].RecordCount != 3 {
		t.Errorf("A record count = %d, want 3", result[0].RecordCount)
	}

	if result[1].Quantity != 5 {
		t.Errorf("B quantity = %v, want 5", result[1].Quantity)
	}
	if !reflect.DeepEqual(result[1].Contributors, []string{"X"}) {
		t.Errorf("B contributors = %v, want [X]", result[1].Contributors)
	}
}

func TestConsolidateDeduplicatesContributors(t *testing.T) {
	rows := []ItemRow{
		{Code: "A", Quantity: 1, UserName: "X"},
		{Code: "A", Quantity: 1, UserName: "X"},
	}

	result := Consolidate(rows)
	if len(result[0].Contributors) != 1 {
		t.Errorf("repeat contributions by the same user must not duplicate: %v", result[0].Contributors)
	}
}

func TestConsolidateIdempotent(t *testing.T) {
	rows := []ItemRow{
		{Code: "B2", Quantity: 1.5, RecordCount: 1, UserName: "Maria"},
		{Code: "a1", Quantity: 2, RecordCount: 1, UserName: "João"},
		{Code: "B2", Quantity: 3, RecordCount: 2, UserName: "Ana"},
	}

	first := Consolidate(rows)
	second := Consolidate(rows)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation is not deterministic:\n%#v\n%#v", first, second)
	}
}

func TestConsolidateLocaleOrder(t *testing.T) {
	// Mixed-case codes sort in natural reading order, not byte order
	rows := []ItemRow{
		{Code: "b1", Quantity: 1, UserName: "X"},
		{Code: "A2", Quantity: 1, UserName: "X"},
		{Code: "a1", Quantity: 1, UserName: "X"},
	}

	result := Consolidate(rows)

	got := []string{result[0].Code, result[1].Code, result[2].Code}
	want := []string{"a1", "A2", "b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestConsolidateTracksLatestUpdate(t *testing.T) {
	early := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(2 * time.Hour)

	rows := []ItemRow{
		{Code: "A", Quantity: 1, UserName: "X", LastUpdatedAt: late},
		{Code: "A", Quantity: 1, UserName: "Y", LastUpdatedAt: early},
	}

	result := Consolidate(rows)
	if !result[0].LastUpdatedAt.Equal(late) {
		t.Errorf("LastUpdatedAt = %v, want %v", result[0].LastUpdatedAt, late)
	}
}

func TestComputeTotals(t *testing.T) {
	rows := Consolidate([]ItemRow{
		{Code: "A", Quantity: 3, RecordCount: 1, UserName: "X"},
		{Code: "A", Quantity: 2, RecordCount: 1, UserName: "Y"},
		{Code: "B", Quantity: 5, RecordCount: 3, UserName: "X"},
	})

	totals := ComputeTotals(rows)

	if totals.DistinctItems != 2 {
		t.Errorf("DistinctItems = %d, want 2", totals.DistinctItems)
	}
	if totals.TotalUnits != 10 {
		t.Errorf("TotalUnits = %v, want 10", totals.TotalUnits)
	}
	if totals.TotalRecords != 5 {
		t.Errorf("TotalRecords = %d, want 5", totals.TotalRecords)
	}
	if totals.DistinctContributors != 2 {
		t.Errorf("DistinctContributors = %d, want 2", totals.DistinctContributors)
	}
}

func TestByCategoryPercentagesSumTo100(t *testing.T) {
	rows := []ItemRow{
		{Category: "Fertilizantes", Quantity: 7},
		{Category: "Sementes", Quantity: 2},
		{Category: "Fertilizantes", Quantity: 1},
		{Category: "Pesticidas", Quantity: 3.5},
	}

	result := ByCategory(rows)

	if len(result) != 3 {
		t.Fatalf("got %d categories, want 3", len(result))
	}
	if result[0].Category != "Fertilizantes" {
		t.Errorf("largest category first, got %s", result[0].Category)
	}

	var sum float64
	for _, c := range result {
		sum += c.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
}

func TestByCategoryEmptyInput(t *testing.T) {
	if got := ByCategory(nil); len(got) != 0 {
		t.Errorf("ByCategory(nil) = %v, want empty", got)
	}
}

func TestCounterAnalysis(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end1 := start.Add(30 * time.Minute)
	end2 := start.Add(60 * time.Minute)

	sessions := []SessionSummary{
		{UserName: "Maria", StartedAt: start, EndedAt: &end1, TotalItems: 30, TotalUnits: 90},
		{UserName: "Maria", StartedAt: start, EndedAt: &end2, TotalItems: 30, TotalUnits: 60},
		{UserName: "João", StartedAt: start, EndedAt: &end1, TotalItems: 10, TotalUnits: 20},
	}

	result := CounterAnalysis(sessions, end2)

	if len(result) != 2 {
		t.Fatalf("got %d counters, want 2", len(result))
	}
	// Ordered by total units descending
	if result[0].Name != "Maria" {
		t.Errorf("first counter = %s, want Maria", result[0].Name)
	}
	if result[0].Sessions != 2 || result[0].TotalItems != 60 {
		t.Errorf("Maria stats = %+v", result[0])
	}
	if result[0].ItemsPerSession != 30 {
		t.Errorf("ItemsPerSession = %v, want 30", result[0].ItemsPerSession)
	}
	if math.Abs(result[0].TotalMinutes-90) > 1e-9 {
		t.Errorf("TotalMinutes = %v, want 90", result[0].TotalMinutes)
	}
	if math.Abs(result[0].UnitsPerMinute-150.0/90.0) > 1e-9 {
		t.Errorf("UnitsPerMinute = %v", result[0].UnitsPerMinute)
	}

	// Open session counts elapsed time up to now
	open := []SessionSummary{{UserName: "Ana", StartedAt: start, TotalItems: 5, TotalUnits: 5}}
	openResult := CounterAnalysis(open, start.Add(10*time.Minute))
	if math.Abs(openResult[0].TotalMinutes-10) > 1e-9 {
		t.Errorf("open session minutes = %v, want 10", openResult[0].TotalMinutes)
	}
}
