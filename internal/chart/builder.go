// Package chart turns a decoded dataset and two selected columns into the
// aggregate series consumed by the external renderer.
package chart

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/excel-analyzer-api/internal/models"
)

// Kind selects the aggregation applied to the value column.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// ValidKinds defines the chart kinds accepted by the API.
var ValidKinds = map[Kind]bool{
	KindBar:     true,
	KindLine:    true,
	KindPie:     true,
	KindScatter: true,
}

// ErrMissingAxis is returned when either selected column is empty or not
// part of the dataset's column set.
var ErrMissingAxis = errors.New("both category and value columns must be selected")

// Point is one label/value pair of a grouped series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// XYPoint is one scatter coordinate pair.
type XYPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is the renderer-facing output: a declared kind, axis labels and a
// title, plus either grouped points or raw scatter pairs.
type Series struct {
	Kind         Kind      `json:"kind"`
	Title        string    `json:"title"`
	CategoryAxis string    `json:"categoryAxis"`
	ValueAxis    string    `json:"valueAxis"`
	Points       []Point   `json:"points,omitempty"`
	XY           []XYPoint `json:"xy,omitempty"`
}

// Build aggregates the dataset for the given chart kind:
//
//   - pie: one total per distinct category value, summing the value column
//   - scatter: one (x, y) pair per row, no grouping
//   - bar, line (and anything else): per-category arithmetic mean
//
// Categories keep first-seen order. Cells that fail to parse as floats
// contribute 0; charts stay resilient to partially malformed data.
func Build(ds *models.Dataset, categoryColumn, valueColumn string, kind Kind) (*Series, error) {
	if categoryColumn == "" || valueColumn == "" ||
		!ds.HasColumn(categoryColumn) || !ds.HasColumn(valueColumn) {
		return nil, ErrMissingAxis
	}

	s := &Series{
		Kind:         kind,
		Title:        fmt.Sprintf("%s vs %s", valueColumn, categoryColumn),
		CategoryAxis: categoryColumn,
		ValueAxis:    valueColumn,
	}

	if kind == KindScatter {
		s.XY = make([]XYPoint, 0, len(ds.Rows))
		for _, row := range ds.Rows {
			s.XY = append(s.XY, XYPoint{
				X: parseCell(row[categoryColumn]),
				Y: parseCell(row[valueColumn]),
			})
		}
		return s, nil
	}

	type group struct {
		sum   float64
		count int
	}
	var order []string
	groups := make(map[string]*group)

	for _, row := range ds.Rows {
		key := row[categoryColumn]
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		g.sum += parseCell(row[valueColumn])
		g.count++
	}

	s.Points = make([]Point, 0, len(order))
	for _, key := range order {
		g := groups[key]
		value := g.sum
		if kind != KindPie {
			value = g.sum / float64(g.count)
		}
		s.Points = append(s.Points, Point{Label: key, Value: value})
	}

	return s, nil
}

// parseCell applies the uniform numeric parse policy: a standard float
// parse of the trimmed cell, with failure or absence yielding 0.
func parseCell(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
