package chart

import (
	"math"
	"testing"

	"github.com/excel-analyzer-api/internal/models"
)

func salesDataset() *models.Dataset {
	return &models.Dataset{
		Columns: []string{"region", "sales"},
		Rows: []models.Row{
			{"region": "East", "sales": "10"},
			{"region": "East", "sales": "20"},
			{"region": "West", "sales": "5"},
		},
	}
}

func TestBuild_PieSumsPerCategory(t *testing.T) {
	series, err := Build(salesDataset(), "region", "sales", KindPie)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []Point{
		{Label: "East", Value: 30},
		{Label: "West", Value: 5},
	}
	assertPoints(t, series.Points, want)

	if series.Kind != KindPie {
		t.Errorf("Expected kind pie, got %s", series.Kind)
	}
	if series.Title != "sales vs region" {
		t.Errorf("Unexpected title: %q", series.Title)
	}
}

func TestBuild_BarAveragesPerCategory(t *testing.T) {
	series, err := Build(salesDataset(), "region", "sales", KindBar)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []Point{
		{Label: "East", Value: 15},
		{Label: "West", Value: 5},
	}
	assertPoints(t, series.Points, want)
}

func TestBuild_LineAveragesPerCategory(t *testing.T) {
	series, err := Build(salesDataset(), "region", "sales", KindLine)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := []Point{
		{Label: "East", Value: 15},
		{Label: "West", Value: 5},
	}
	assertPoints(t, series.Points, want)
}

func TestBuild_ScatterKeepsRowOrder(t *testing.T) {
	ds := &models.Dataset{
		Columns: []string{"x", "y"},
		Rows: []models.Row{
			{"x": "3", "y": "9"},
			{"x": "1", "y": "1"},
			{"x": "2", "y": "oops"},
		},
	}

	series, err := Build(ds, "x", "y", KindScatter)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(series.XY) != len(ds.Rows) {
		t.Fatalf("Expected %d pairs, got %d", len(ds.Rows), len(series.XY))
	}
	want := []XYPoint{{X: 3, Y: 9}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	for i, p := range series.XY {
		if p != want[i] {
			t.Errorf("Pair %d: expected %+v, got %+v", i, want[i], p)
		}
	}
	if series.Points != nil {
		t.Error("Scatter should not produce grouped points")
	}
}

func TestBuild_UnparseableValuesCountAsZero(t *testing.T) {
	ds := &models.Dataset{
		Columns: []string{"region", "sales"},
		Rows: []models.Row{
			{"region": "East", "sales": "10"},
			{"region": "East", "sales": "n/a"},
			{"region": "East", "sales": ""},
			{"region": "West", "sales": " 5 "},
		},
	}

	pie, err := Build(ds, "region", "sales", KindPie)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	assertPoints(t, pie.Points, []Point{
		{Label: "East", Value: 10},
		{Label: "West", Value: 5},
	})

	// Bad cells still count toward the mean's denominator
	bar, err := Build(ds, "region", "sales", KindBar)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	east := bar.Points[0]
	if math.Abs(east.Value-10.0/3.0) > 1e-9 {
		t.Errorf("Expected East mean %f, got %f", 10.0/3.0, east.Value)
	}
}

func TestBuild_FirstSeenCategoryOrder(t *testing.T) {
	ds := &models.Dataset{
		Columns: []string{"city", "n"},
		Rows: []models.Row{
			{"city": "Zagreb", "n": "1"},
			{"city": "Austin", "n": "2"},
			{"city": "Zagreb", "n": "3"},
			{"city": "Madrid", "n": "4"},
		},
	}

	series, err := Build(ds, "city", "n", KindPie)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	order := []string{"Zagreb", "Austin", "Madrid"}
	if len(series.Points) != len(order) {
		t.Fatalf("Expected %d categories, got %d", len(order), len(series.Points))
	}
	for i, label := range order {
		if series.Points[i].Label != label {
			t.Errorf("Position %d: expected %q, got %q", i, label, series.Points[i].Label)
		}
	}
}

func TestBuild_MissingAxisSelection(t *testing.T) {
	ds := salesDataset()

	tests := []struct {
		name     string
		category string
		value    string
	}{
		{"empty category", "", "sales"},
		{"empty value", "region", ""},
		{"unknown category", "country", "sales"},
		{"unknown value", "region", "revenue"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(ds, tt.category, tt.value, KindBar); err != ErrMissingAxis {
				t.Errorf("Expected ErrMissingAxis, got %v", err)
			}
		})
	}
}

func TestBuild_EmptyDatasetHasNoColumns(t *testing.T) {
	ds := &models.Dataset{}
	if _, err := Build(ds, "region", "sales", KindPie); err != ErrMissingAxis {
		t.Errorf("Expected ErrMissingAxis on empty dataset, got %v", err)
	}
}

func TestBuild_DatasetWithColumnsButNoRows(t *testing.T) {
	ds := &models.Dataset{Columns: []string{"region", "sales"}}

	series, err := Build(ds, "region", "sales", KindBar)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(series.Points) != 0 {
		t.Errorf("Expected no points, got %d", len(series.Points))
	}
}

func assertPoints(t *testing.T, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Label != want[i].Label {
			t.Errorf("Point %d: expected label %q, got %q", i, want[i].Label, got[i].Label)
		}
		if math.Abs(got[i].Value-want[i].Value) > 1e-9 {
			t.Errorf("Point %d (%s): expected value %f, got %f", i, want[i].Label, want[i].Value, got[i].Value)
		}
	}
}
