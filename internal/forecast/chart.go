package forecast

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/MrJamesThe3rd/carteira/internal/money"
)

// RenderChart draws the month rows of res as a PNG: ending balance plus the
// income and outgoing (expenses and invoices) series.
func RenderChart(res Result) ([]byte, error) {
	rows := append(append([]MonthRow{}, res.HistoryMonths...), res.Forecast...)
	if len(rows) < 2 {
		return nil, fmt.Errorf("need at least 2 months, got %d", len(rows))
	}

	xValues := make([]float64, len(rows))
	balanceY := make([]float64, len(rows))
	incomeY := make([]float64, len(rows))
	outY := make([]float64, len(rows))
	ticks := make([]chart.Tick, 0, len(rows))

	step := max(1, len(rows)/12)

	for i, r := range rows {
		xValues[i] = float64(i)
		balanceY[i] = money.ToFloat(r.EndingBalance)
		incomeY[i] = money.ToFloat(r.Income)
		outY[i] = money.ToFloat(r.Expenses + r.Invoices)

		if i%step == 0 {
			ticks = append(ticks, chart.Tick{Value: float64(i), Label: r.Period.String()})
		}
	}

	balanceSeries := chart.ContinuousSeries{
		Name: "Saldo",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: balanceY,
	}

	incomeSeries := chart.ContinuousSeries{
		Name: "Receitas",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("16a34a"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: incomeY,
	}

	outSeries := chart.ContinuousSeries{
		Name: "Gastos e faturas",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("dc2626"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: outY,
	}

	graph := chart.Chart{
		Title:  "Previsão de saldo",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("R$ %.1fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			balanceSeries,
			incomeSeries,
			outSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
