package export

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderGrowthCurve plots population size over division cycles to a PNG.
// The growth history carries two samples per generation (after division,
// after death), so the x axis advances by half a cycle per sample.
func RenderGrowthCurve(path string, growth []int) error {
	if len(growth) < 2 {
		// A chart needs a range; a run this short has nothing to plot.
		return nil
	}
	xs := make([]float64, len(growth))
	ys := make([]float64, len(growth))
	for i, n := range growth {
		xs[i] = float64(i) / 2
		ys[i] = float64(n)
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis:  chart.XAxis{Name: "Division cycle"},
		YAxis:  chart.YAxis{Name: "Number of tumour cells"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create growth curve: %w", err)
	}
	defer f.Close()
	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render growth curve: %w", err)
	}
	return nil
}
