package plot

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ukaji3/fluentout-go/pkg/fluentout/models"
)

// Mode selects how samples are drawn.
type Mode string

const (
	// ModeLine connects samples with a line.
	ModeLine Mode = "line"
	// ModeScatter draws unconnected dots.
	ModeScatter Mode = "scatter"
)

// ParseMode converts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLine, ModeScatter:
		return m, nil
	}
	return "", fmt.Errorf("unknown plot mode %q (want %s or %s)", s, ModeLine, ModeScatter)
}

// Style holds the image settings for rendered plots.
type Style struct {
	// Mode is the default rendering mode.
	Mode Mode `yaml:"mode"`
	// Width and Height are the image size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// DPI scales font rendering.
	DPI float64 `yaml:"dpi"`
	// LineWidth is the stroke width in line mode and the dot width in
	// scatter mode.
	LineWidth      float64 `yaml:"line_width"`
	TitleFontSize  float64 `yaml:"title_font_size"`
	LabelFontSize  float64 `yaml:"label_font_size"`
	AxisFontSize   float64 `yaml:"axis_font_size"`
	LegendFontSize float64 `yaml:"legend_font_size"`
}

// DefaultStyle returns the default plot settings.
func DefaultStyle() Style {
	return Style{
		Mode:           ModeLine,
		Width:          1600,
		Height:         900,
		DPI:            100,
		LineWidth:      2,
		TitleFontSize:  28,
		LabelFontSize:  24,
		AxisFontSize:   20,
		LegendFontSize: 20,
	}
}

// Renderer turns a PlotSpec into an image artifact and returns its path.
type Renderer interface {
	Render(spec models.PlotSpec, mode Mode) (string, error)
}

// ChartRenderer writes PNG charts into Dir.
type ChartRenderer struct {
	Dir    string
	Style  Style
	Logger *slog.Logger
}

// NewChartRenderer creates a ChartRenderer. A nil logger discards records.
func NewChartRenderer(dir string, style Style, logger *slog.Logger) *ChartRenderer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ChartRenderer{Dir: dir, Style: style, Logger: logger}
}

// Render writes Dir/{spec.Name}.png.
func (r *ChartRenderer) Render(spec models.PlotSpec, mode Mode) (path string, err error) {
	if spec.Name == "" {
		return "", fmt.Errorf("plot has no name")
	}
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("plot %s has no series", spec.Name)
	}
	if r.Dir != "" {
		if err := os.MkdirAll(r.Dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	path = filepath.Join(r.Dir, spec.Name+".png")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := r.Write(f, spec, mode); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", spec.Name, err)
	}
	r.Logger.Debug("rendered plot", "path", path, "series", len(spec.Series), "mode", string(mode))
	return path, nil
}

// Write renders spec as PNG into w.
func (r *ChartRenderer) Write(w io.Writer, spec models.PlotSpec, mode Mode) error {
	ch := r.build(spec, mode)
	return ch.Render(chart.PNG, w)
}

func (r *ChartRenderer) build(spec models.PlotSpec, mode Mode) chart.Chart {
	st := r.Style
	grid := chart.Style{StrokeColor: drawing.ColorFromHex("d0d0d0"), StrokeWidth: 1}
	x, y := Widen(spec.XRange), Widen(spec.YRange)

	list := make([]chart.Series, 0, len(spec.Series))
	for i, s := range spec.Series {
		list = append(list, chart.ContinuousSeries{
			Name:    s.Legend,
			XValues: s.XValues,
			YValues: s.YValues,
			Style:   seriesStyle(chart.GetDefaultColor(i), mode, st.LineWidth, len(s.XValues)),
		})
	}

	ch := chart.Chart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: st.TitleFontSize},
		Width:      st.Width,
		Height:     st.Height,
		DPI:        st.DPI,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 40, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           spec.XLabel,
			NameStyle:      chart.Style{FontSize: st.LabelFontSize},
			Style:          chart.Style{FontSize: st.AxisFontSize},
			Range:          &chart.ContinuousRange{Min: x.Min, Max: x.Max},
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			NameStyle:      chart.Style{FontSize: st.LabelFontSize},
			Style:          chart.Style{FontSize: st.AxisFontSize},
			Range:          &chart.ContinuousRange{Min: y.Min, Max: y.Max},
			GridMajorStyle: grid,
			GridMinorStyle: grid,
		},
		Series: list,
	}
	if len(list) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{FontSize: st.LegendFontSize})}
	}
	return ch
}

// seriesStyle draws dots only in scatter mode and for single samples,
// which a line cannot show.
func seriesStyle(col drawing.Color, mode Mode, width float64, samples int) chart.Style {
	if mode == ModeScatter || samples < 2 {
		return chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    width + 2,
			DotColor:    col,
		}
	}
	return chart.Style{StrokeColor: col, StrokeWidth: width}
}
