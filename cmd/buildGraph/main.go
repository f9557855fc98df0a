package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BenchmarkResult mirrors the bench binary's JSON schema.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Workload       string  `json:"workload"`
	Pushes         int64   `json:"pushes"`
	Pops           int64   `json:"pops"`
	TestDuration   string  `json:"test_duration"`
	ActualElapsed  string  `json:"actual_elapsed"`
	Throughput     float64 `json:"throughput_ops_sec"`
	FinalCap       int     `json:"final_capacity"`
	Timestamp      int64   `json:"timestamp"`
	GoVersion      string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// workloadStats holds "5%-avg-min", median, and "5%-avg-max" per workload.
type workloadStats struct {
	x      float64 // category index on the X axis (plus per-impl offset)
	orig   float64 // original category index
	min    float64 // average of bottom 5%
	median float64
	max    float64 // average of top 5%
}

// statsPoints implements XYer and YErrorer so lines and error bars share data.
type statsPoints []workloadStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	low = s[i].median - s[i].min
	high = s[i].max - s[i].median
	return low, high
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => workload names.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

func main() {
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file containing test sessions")
	output := flag.String("out", "benchmark_graph.png", "Output graph image filename")
	flag.Parse()

	data, err := os.ReadFile(*jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file: %v\n", err)
		os.Exit(1)
	}

	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling JSON: %v\n", err)
		os.Exit(1)
	}

	// Group data by Implementation -> workload name -> ns/op samples.
	implMap := make(map[string]map[string][]float64)
	workloadSet := make(map[string]struct{})

	for _, session := range sessions {
		for _, b := range session.Benchmarks {
			dur, err := time.ParseDuration(b.ActualElapsed)
			ops := b.Pushes + b.Pops
			if err != nil || ops == 0 {
				continue
			}
			nsPerOp := float64(dur.Nanoseconds()) / float64(ops)

			if _, ok := implMap[b.Implementation]; !ok {
				implMap[b.Implementation] = make(map[string][]float64)
			}
			implMap[b.Implementation][b.Workload] = append(implMap[b.Implementation][b.Workload], nsPerOp)
			workloadSet[b.Workload] = struct{}{}
		}
	}
	if len(implMap) == 0 {
		fmt.Fprintln(os.Stderr, "No usable benchmark data found.")
		os.Exit(1)
	}

	// Stable workload ordering: alphabetical category axis.
	var workloadNames []string
	for name := range workloadSet {
		workloadNames = append(workloadNames, name)
	}
	sort.Strings(workloadNames)
	workloadIndex := make(map[string]float64, len(workloadNames))
	var positions []float64
	for i, name := range workloadNames {
		workloadIndex[name] = float64(i)
		positions = append(positions, float64(i))
	}

	p := plot.New()
	p.Title.Text = "Time per Operation (5%-avg-min / Median / 5%-avg-max) by Workload"
	p.X.Label.Text = "Workload"
	p.Y.Label.Text = "Time per Op (ns) [log scale]"

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white

	p.X.Tick.Marker = categoryTicks{positions: positions, labels: workloadNames}
	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		// Evenly spaced ticks in log space, labeled in ns/µs/ms.
		const nTicks = 20.0
		if min <= 0 {
			min = 1e-9
		}
		start := math.Log10(min)
		end := math.Log10(max)
		step := (end - start) / nTicks

		var ticks []plot.Tick
		for i := 0.0; i <= nTicks; i++ {
			y := math.Pow(10, start+i*step)
			ticks = append(ticks, plot.Tick{Value: y, Label: formatNs(y)})
		}
		return ticks
	})

	p.Add(plotter.NewGrid())

	// Sort implementations alphabetically for consistent legend ordering.
	var implNames []string
	for implName := range implMap {
		implNames = append(implNames, implName)
	}
	sort.Strings(implNames)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Slight offset so each implementation is visually separated.
	offsetRange := 0.4
	offsetStep := offsetRange / float64(len(implNames))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, impl := range implNames {
		stats := buildStats(implMap[impl], workloadIndex)
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = stats[j].orig + startOffset + float64(i)*offsetStep
		}
		sort.Slice(stats, func(a, b int) bool {
			return stats[a].x < stats[b].x
		})
		sp := statsPoints(stats)

		line, err := plotter.NewLine(sp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating line: %v\n", err)
			continue
		}
		line.Color = colors[i%len(colors)]

		points, err := plotter.NewScatter(sp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scatter: %v\n", err)
			continue
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = colors[i%len(colors)]
		points.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating error bars: %v\n", err)
			continue
		}
		yErrBars.Color = colors[i%len(colors)]

		p.Add(line, points, yErrBars)
		p.Legend.Add(impl, line, points)
	}

	if err := p.Save(12*vg.Inch, 9*vg.Inch, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving plot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Graph saved to %s\n", *output)
}

// buildStats computes "average of bottom 5%", median, and "average of top 5%"
// for each workload's samples.
func buildStats(byWorkload map[string][]float64, workloadIndex map[string]float64) []workloadStats {
	var out []workloadStats
	for name, vals := range byWorkload {
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		x := workloadIndex[name]
		out = append(out, workloadStats{
			x:      x,
			orig:   x,
			min:    averageOfRange(vals, 0.0, 0.05),
			median: median(vals),
			max:    averageOfRange(vals, 0.95, 1.0),
		})
	}
	return out
}

// averageOfRange returns the average of sortedVals in [startFrac, endFrac] of
// its length. E.g. averageOfRange(vals, 0, 0.05) is the average of the bottom 5%.
func averageOfRange(sortedVals []float64, startFrac, endFrac float64) float64 {
	n := len(sortedVals)
	if n == 0 {
		return 0
	}
	startIndex := int(float64(n) * startFrac)
	endIndex := int(float64(n) * endFrac)
	if startIndex < 0 {
		startIndex = 0
	}
	if endIndex > n {
		endIndex = n
	}
	if startIndex >= endIndex {
		// fallback to median if the 5% slice is too small
		return median(sortedVals)
	}
	sum := 0.0
	for i := startIndex; i < endIndex; i++ {
		sum += sortedVals[i]
	}
	return sum / float64(endIndex-startIndex)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// formatNs nicely formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
