package render

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/0x0FACED/go-lloyd/pkg/shader"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

func prepareScatter(scatter *charts.Scatter, bbox voronoi.BoundingBox) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Диаграмма Вороного (полуплоскости)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Ширина",
			Min:  bbox.Xl,
			Max:  bbox.Xr,
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Высота",
			Min:  bbox.Yt,
			Max:  bbox.Yb,
			// экранная ось Y смотрит вниз
			Inverse: opts.Bool(true),
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Chart переводит диаграмму в Echarts: точки - scatter, ребра - линии поверх.
// Точка-указатель выводится отдельной серией.
func Chart(sites []voronoi.Site, d *voronoi.Diagram, bbox voronoi.BoundingBox, o shader.Options) *charts.Scatter {
	scatter := charts.NewScatter()

	points := make([]opts.ScatterData, 0, len(sites))
	var pointer []opts.ScatterData
	for _, site := range sites {
		item := opts.ScatterData{
			Name:  fmt.Sprintf("#%d", site.ID),
			Value: []float64{site.X, site.Y},
		}
		if site.Pointer {
			pointer = append(pointer, item)
			continue
		}
		points = append(points, item)
	}

	// Дизайним скаттер
	prepareScatter(scatter, bbox)

	scatter.AddSeries("Точки", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: shader.HSL(o.Hue-180, 80, 50).Hex(),
			}),
		)
	if len(pointer) > 0 {
		scatter.AddSeries("Указатель", pointer).
			SetSeriesOptions(
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color: "white",
				}),
			)
	}

	if d == nil || !o.ShowEdges {
		return scatter
	}

	edgeColor := shader.HSL(o.Hue, 60, 70).Hex()
	for _, edge := range d.Edges {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries("Границы", []opts.LineData{
			{Value: []float64{edge.Va.X, edge.Va.Y}},
			{Value: []float64{edge.Vb.X, edge.Vb.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: float32(o.EdgeWidth),
				Color: edgeColor,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}
