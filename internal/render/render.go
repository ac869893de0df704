// Package render draws the dashboard charts with gonum/plot. Each call
// builds and returns its own *plot.Plot; the caller owns it.
package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"rentdash/internal/locale"
	"rentdash/internal/models"
)

var (
	lineColor      = color.RGBA{R: 75, G: 192, B: 192, A: 255}
	estimatedColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}

	barColors = []color.Color{
		color.RGBA{R: 0x99, G: 0x66, B: 0xff, A: 0xff},
		color.RGBA{R: 0x4b, G: 0xc0, B: 0xc0, A: 0xff},
		color.RGBA{R: 0x28, G: 0x60, B: 0xee, A: 0xff},
	}

	dashes = []vg.Length{vg.Points(6), vg.Points(6)}
)

// Default line chart canvas, in points.
const (
	LineWidth  vg.Length = 600
	LineHeight vg.Length = 400
)

// LineChart draws a time series. Gaps are bridged between the nearest
// present points; a segment starting at an estimated point is dashed.
func LineChart(s models.Series, l *locale.Localizer) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - %s", l.Geography(s.Area), l.UnitType(s.UnitType))
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = l.SeriesXAxis()
	p.Y.Label.Text = l.SeriesYAxis()
	p.Legend.Top = true

	labels := make([]string, len(s.Points))
	for i, pt := range s.Points {
		labels[i] = pt.Label
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}

	var regular, estimated plotter.XYs
	prev := -1
	for i, pt := range s.Points {
		if pt.Y == nil {
			continue
		}
		xy := plotter.XY{X: float64(i), Y: *pt.Y}
		if pt.Estimated {
			estimated = append(estimated, xy)
		} else {
			regular = append(regular, xy)
		}

		if prev >= 0 {
			from := s.Points[prev]
			seg, err := plotter.NewLine(plotter.XYs{{X: float64(prev), Y: *from.Y}, xy})
			if err != nil {
				return nil, err
			}
			styleSegment(seg, from.Estimated)
			p.Add(seg)
		}
		prev = i
	}

	if len(regular) > 0 {
		sc, err := plotter.NewScatter(regular)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = lineColor
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
	}
	if len(estimated) > 0 {
		sc, err := plotter.NewScatter(estimated)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = estimatedColor
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
	}

	thumb, err := legendLine(false)
	if err != nil {
		return nil, err
	}
	p.Legend.Add(l.SeriesName(), thumb)
	if s.Annotations.AnyEstimated {
		est, err := legendLine(true)
		if err != nil {
			return nil, err
		}
		p.Legend.Add(l.EstimatedLegend(), est)
	}

	p.Add(plotter.NewGrid())
	return p, nil
}

// BarChart draws the cross-section as horizontal bars grouped by area,
// one bar per unit type. Estimated bars get a dashed orange outline;
// missing cells draw no bar.
func BarChart(cs models.CrossSection, l *locale.Localizer) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s, %s)", l.CrossSectionTitle(), l.TranslateQuarter(cs.Quarter), l.Province(cs.Province))
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = l.AmountAxis()
	p.Y.Label.Text = l.AreaAxis()
	p.Legend.Top = true

	n := len(cs.Areas)
	if n == 0 {
		return p, nil
	}

	areas := make([]string, n)
	for i, a := range cs.Areas {
		areas[i] = l.Geography(a)
	}

	width := vg.Points(10)
	k := len(cs.UnitTypes)
	for i, ut := range cs.UnitTypes {
		fill := barColors[i%len(barColors)]
		offset := vg.Length(float64(i)-float64(k-1)/2) * width

		regular := make(plotter.Values, n)
		estimated := make(plotter.Values, n)
		hasEstimated := false
		for j, cv := range cs.PerType[ut] {
			if cv.Numeric == nil {
				continue
			}
			if cv.Estimated {
				estimated[j] = *cv.Numeric
				hasEstimated = true
			} else {
				regular[j] = *cv.Numeric
			}
		}

		bars, err := plotter.NewBarChart(regular, width)
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.Color = fill
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = offset
		p.Add(bars)
		p.Legend.Add(l.UnitType(ut), bars)

		if hasEstimated {
			eb, err := plotter.NewBarChart(estimated, width)
			if err != nil {
				return nil, err
			}
			eb.Horizontal = true
			eb.Color = fill
			eb.LineStyle.Color = estimatedColor
			eb.LineStyle.Width = vg.Points(2)
			eb.LineStyle.Dashes = dashes
			eb.Offset = offset
			p.Add(eb)
		}
	}

	if cs.Annotations.AnyEstimated {
		est, err := legendLine(true)
		if err != nil {
			return nil, err
		}
		p.Legend.Add(l.EstimatedLegend(), est)
	}

	p.NominalY(areas...)
	p.Add(plotter.NewGrid())
	return p, nil
}

// BarSize scales the bar chart canvas with the number of areas.
func BarSize(areas int) (w, h vg.Length) {
	w = vg.Length(min(150*areas, 1000))
	h = vg.Length(min(50*areas, 800))
	return max(w, 480), max(h, 320)
}

// WritePNG encodes p as a PNG of the given size.
func WritePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

func styleSegment(seg *plotter.Line, estimated bool) {
	seg.LineStyle.Width = vg.Points(2)
	if estimated {
		seg.LineStyle.Color = estimatedColor
		seg.LineStyle.Dashes = dashes
		return
	}
	seg.LineStyle.Color = lineColor
}

func legendLine(estimated bool) (*plotter.Line, error) {
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 0}})
	if err != nil {
		return nil, err
	}
	styleSegment(line, estimated)
	return line, nil
}
