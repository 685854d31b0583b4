// Package report renders project finance charts as PNG images.
package report

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"farmdash/internal/core"
)

// Generator renders productivity charts for a project.
type Generator struct{}

// NewGenerator creates a chart generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders a pie chart of expense amounts per category. It
// returns nil bytes when there is nothing to draw.
func (g *Generator) CategoryPie(expenses []core.FinancialRecord) ([]byte, error) {
	totals := core.TotalsByCategory(expenses)
	total := core.Total(expenses)
	if total <= 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(totals))
	for _, ct := range totals {
		percentage := (ct.Amount / total) * 100
		// Slivers under 1% clutter the legend.
		if percentage > 1.0 {
			values = append(values, chart.Value{
				Label: fmt.Sprintf("%s: %s (%.1f%%)", ct.Category, core.FormatAmount(ct.Amount), percentage),
				Value: ct.Amount,
			})
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}
	return buffer.Bytes(), nil
}

// IncomeExpenseBars renders a two-bar comparison of total income against
// total expenses.
func (g *Generator) IncomeExpenseBars(expenses, incomes []core.FinancialRecord) ([]byte, error) {
	totalExpense := core.Total(expenses)
	totalIncome := core.Total(incomes)
	if totalExpense <= 0 && totalIncome <= 0 {
		return nil, nil
	}

	upper := totalIncome
	if totalExpense > upper {
		upper = totalExpense
	}

	graph := chart.BarChart{
		Width:    600,
		Height:   400,
		BarWidth: 120,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return core.FormatAmount(v.(float64))
			},
			Range: &chart.ContinuousRange{Min: 0, Max: upper * 1.1},
		},
		Bars: []chart.Value{
			{
				Label: "Income " + core.FormatAmount(totalIncome),
				Value: totalIncome,
				Style: chart.Style{FillColor: chart.ColorGreen, StrokeColor: chart.ColorGreen},
			},
			{
				Label: "Expenses " + core.FormatAmount(totalExpense),
				Value: totalExpense,
				Style: chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render income/expense bars: %w", err)
	}
	return buffer.Bytes(), nil
}
