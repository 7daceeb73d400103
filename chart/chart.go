//Package chart renders hourly glucose statistics as a PNG line chart
package chart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/ptek/dv/hourly"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

//smoothSamples is the number of points each curve is resampled to
const smoothSamples = 300

//Glucose target range in mg/dL, drawn as a green band
const (
	targetRangeLow  = 80
	targetRangeHigh = 200
)

//smooth fits a natural cubic spline through (hours,values) and resamples it.
//With fewer than two knots there is nothing to fit and the raw points are returned.
func smooth(hours, values []float64) (plotter.XYs, error) {
	if len(hours) < 2 {
		xys := make(plotter.XYs, len(hours))
		for i := range hours {
			xys[i].X = hours[i]
			xys[i].Y = values[i]
		}
		return xys, nil
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(hours, values); err != nil {
		return nil, fmt.Errorf("failed to fit spline : %v", err)
	}

	min, max := hours[0], hours[len(hours)-1]
	xys := make(plotter.XYs, smoothSamples)
	for i := range xys {
		x := min + (max-min)*float64(i)/float64(smoothSamples-1)
		xys[i].X = x
		xys[i].Y = spline.Predict(x)
	}
	return xys, nil
}

//band builds a filled polygon between the lower and upper curves
func band(lower, upper plotter.XYs, fill color.Color) (*plotter.Polygon, error) {
	pts := make(plotter.XYs, 0, len(lower)+len(upper))
	pts = append(pts, upper...)
	for i := len(lower) - 1; i >= 0; i-- {
		pts = append(pts, lower[i])
	}
	poly, err := plotter.NewPolygon(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create band polygon : %v", err)
	}
	poly.Color = fill
	poly.LineStyle.Color = color.Transparent
	poly.LineStyle.Width = 0
	return poly, nil
}

//fade copies c with the given alpha so bands stay translucent when stacked
func fade(c color.RGBA, alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

//constant returns a flat curve at y spanning the x range of xys
func constant(xys plotter.XYs, y float64) plotter.XYs {
	flat := make(plotter.XYs, len(xys))
	for i := range xys {
		flat[i].X = xys[i].X
		flat[i].Y = y
	}
	return flat
}

//Plot creates the hourly glucose chart: smoothed mean and percentile curves,
//the 5-95 and 25-75 percentile bands and the target range band
func Plot(stats []hourly.Stats) (*plot.Plot, error) {
	if len(stats) == 0 {
		return nil, fmt.Errorf("no hourly statistics to plot")
	}

	hours := make([]float64, len(stats))
	mean := make([]float64, len(stats))
	p5 := make([]float64, len(stats))
	p25 := make([]float64, len(stats))
	p75 := make([]float64, len(stats))
	p95 := make([]float64, len(stats))
	for i, s := range stats {
		hours[i] = float64(s.Hour)
		mean[i] = s.Mean
		p5[i] = s.P5
		p25[i] = s.P25
		p75[i] = s.P75
		p95[i] = s.P95
	}

	curves := make(map[string]plotter.XYs, 5)
	for name, values := range map[string][]float64{
		"Mean": mean, "5th Percentile": p5, "25th Percentile": p25,
		"75th Percentile": p75, "95th Percentile": p95,
	} {
		xys, err := smooth(hours, values)
		if err != nil {
			return nil, fmt.Errorf("failed to smooth %v curve : %v", name, err)
		}
		curves[name] = xys
	}

	p := plot.New()
	p.Title.Text = "Hourly Glucose Levels (95%, 75%, Mean, 25%, 5%)"
	p.X.Label.Text = "Hour of the Day"
	p.Y.Label.Text = "Glucose Value (mg/dL)"
	p.Add(plotter.NewGrid())

	targetBand, err := band(constant(curves["Mean"], targetRangeLow), constant(curves["Mean"], targetRangeHigh), fade(colornames.Lightgreen, 77))
	if err != nil {
		return nil, err
	}
	outerBand, err := band(curves["5th Percentile"], curves["95th Percentile"], fade(colornames.Lightgray, 128))
	if err != nil {
		return nil, err
	}
	innerBand, err := band(curves["25th Percentile"], curves["75th Percentile"], fade(colornames.Gray, 128))
	if err != nil {
		return nil, err
	}
	p.Add(targetBand, outerBand, innerBand)

	lineColors := map[string]color.RGBA{
		"Mean":            colornames.Blue,
		"5th Percentile":  colornames.Orange,
		"25th Percentile": colornames.Green,
		"75th Percentile": colornames.Red,
		"95th Percentile": colornames.Purple,
	}
	for _, name := range []string{"95th Percentile", "75th Percentile", "Mean", "25th Percentile", "5th Percentile"} {
		line, err := plotter.NewLine(curves[name])
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %v : %v", name, err)
		}
		line.Color = lineColors[name]
		p.Add(line)
		p.Legend.Add(name, line)
	}
	p.Legend.Add("Target Range", targetBand)
	p.Legend.Top = true

	p.X.Tick.Marker = hourTicks{}

	return p, nil
}

//hourTicks labels every full hour of the day
type hourTicks struct{}

func (hourTicks) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, 24)
	for h := 0; h < 24; h++ {
		x := float64(h)
		if x < min || x > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: x, Label: fmt.Sprintf("%d", h)})
	}
	return ticks
}

//PlotAndStore wraps Plot and writes the chart as a PNG to out
func PlotAndStore(stats []hourly.Stats, out io.Writer) error {
	p, err := Plot(stats)
	if err != nil {
		return fmt.Errorf("failed to create plot : %v", err)
	}
	writerTo, err := p.WriterTo(800, 600, "png")
	if err != nil {
		return fmt.Errorf("failed to prepare plot for writing : %v", err)
	}
	if _, err := writerTo.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write plot : %v", err)
	}
	return nil
}
