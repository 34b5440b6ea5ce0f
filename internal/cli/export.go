package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-lloyd/internal/config"
	"github.com/0x0FACED/go-lloyd/pkg/render"
	"github.com/0x0FACED/go-lloyd/pkg/scene"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

const (
	formatSVG  = "svg"
	formatHTML = "html"
)

// exportOpts - флаги команды export. Нулевое значение - взять из конфига.
type exportOpts struct {
	output string  // файл, "-" для stdout
	format string  // svg или html (страница echarts)
	sites  int     // число точек
	steps  int     // шаги релаксации Ллойда
	seed   int64   // зерно генератора
	width  int     // ширина прямоугольника
	height int     // высота прямоугольника
	mode   string  // режим заливки
	time   float64 // время шейдера в секундах
	grid   bool    // сетка вместо случайных точек
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build a scene, relax it and write the diagram",
		Long: `Build a scene from the config and flags, run the requested number of
Lloyd relaxation steps and write the diagram as SVG (shaded cells) or as an
HTML page with the interactive chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			flags := cmd.Flags()
			if flags.Changed("sites") {
				cfg.Scene.Sites = opts.sites
			}
			if flags.Changed("steps") {
				cfg.Scene.RelaxSteps = opts.steps
			}
			if flags.Changed("seed") {
				cfg.Scene.Seed = opts.seed
			}
			if flags.Changed("width") {
				cfg.Scene.Width = opts.width
			}
			if flags.Changed("height") {
				cfg.Scene.Height = opts.height
			}
			if flags.Changed("mode") {
				cfg.Shading.Mode = opts.mode
			}
			if flags.Changed("grid") {
				cfg.Scene.Random = !opts.grid
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if opts.output == "-" {
				return c.runExport(cmd.Context(), cfg, opts, cmd.OutOrStdout())
			}
			f, err := os.Create(opts.output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := c.runExport(cmd.Context(), cfg, opts, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "voronoi.svg", `output file ("-" for stdout)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, html")
	cmd.Flags().IntVarP(&opts.sites, "sites", "n", 0, "number of sites (default from config)")
	cmd.Flags().IntVarP(&opts.steps, "steps", "s", 0, "Lloyd relaxation steps (default from config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "box width (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "box height (default from config)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "shading mode: off, noise, distance, spiral, cellId")
	cmd.Flags().Float64Var(&opts.time, "time", 0, "shader time in seconds")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "place sites on a grid instead of randomly")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, cfg config.Config, opts exportOpts, w io.Writer) error {
	format := strings.ToLower(opts.format)
	if format != formatSVG && format != formatHTML {
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.format, formatSVG, formatHTML)
	}

	bbox := voronoi.NewBoundingBox(0, float64(cfg.Scene.Width), 0, float64(cfg.Scene.Height))
	sc := scene.New(bbox, cfg.Scene.Seed, c.Logger.Named("scene"))
	if cfg.Scene.Random {
		sc.Randomize(cfg.Scene.Sites, true, cfg.Scene.Margin)
	} else {
		sc.Grid(cfg.Scene.Sites)
	}

	steps := 0
	for steps < cfg.Scene.RelaxSteps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !sc.Relax() {
			break
		}
		steps++
	}

	d, warn := sc.Compute()
	if warn != nil {
		c.Logger.Warn("[cli] Диаграмма построена с предупреждениями", zap.Error(warn))
	}
	o := cfg.Shading.Options()

	c.Logger.Info("[cli] Экспорт",
		zap.String("output", opts.output),
		zap.String("format", format),
		zap.Int("sites", sc.Len()-1),
		zap.Int("relax_steps", steps),
		zap.Int("edges", len(d.Edges)),
	)

	if format == formatHTML {
		return render.Chart(sc.Sites(), d, bbox, o).Render(w)
	}
	return render.SVG(w, render.Frame{
		Sites:   sc.Sites(),
		Diagram: d,
		BBox:    bbox,
		Options: o,
		Time:    opts.time,
	})
}
