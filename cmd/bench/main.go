package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/quevin/flatqueue/internal/queue"
	"github.com/quevin/flatqueue/internal/testbench"
	"github.com/quevin/flatqueue/pkg/config"
	"github.com/quevin/flatqueue/pkg/flatqueue"
	"github.com/quevin/flatqueue/pkg/ringqueue"
	"github.com/quevin/flatqueue/pkg/shiftqueue"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Workload       string  `json:"workload"`
	Pushes         int64   `json:"pushes"`
	Pops           int64   `json:"pops"`
	TestDuration   string  `json:"test_duration"`  // e.g. "2s"
	ActualElapsed  string  `json:"actual_elapsed"` // measured time
	Throughput     float64 `json:"throughput_ops_sec"`
	FinalCap       int     `json:"final_capacity"` // storage left after drain
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

// benchQueue is the runtime view of the FIFO contract, instantiated for the
// int payloads the bench pushes.
type benchQueue = queue.FIFO[int]

// Implementation represents one queue implementation under test.
type Implementation struct {
	name        string
	pkgName     string
	description string
	features    []string
	newQueue    func(prealloc int) benchQueue
}

// flatAdapter maps the flat queue's contract-style API (panicking Pop) onto
// the harness's comma-ok FIFO surface.
type flatAdapter struct {
	*flatqueue.Queue[int]
}

func (a flatAdapter) Pop() (int, bool) {
	if a.Queue.Empty() {
		return 0, false
	}
	return a.Queue.Pop(), true
}

// getImplementations enumerates the queue implementations under test.
func getImplementations() []Implementation {
	return []Implementation{
		{
			name:        "FlatQueue",
			pkgName:     "flatqueue",
			description: "Contiguous buffer with a front cursor; dead space is trimmed whenever it exceeds the live size. Default 1.5x growth.",
			features:    []string{"FIFO", "Amortized-Trimming", "Indexed-Access"},
			newQueue: func(prealloc int) benchQueue {
				return flatAdapter{flatqueue.New[int](flatqueue.WithCapacity(prealloc))}
			},
		},
		{
			name:        "FlatQueue2x",
			pkgName:     "flatqueue",
			description: "FlatQueue with a 2.0x growth factor: fewer compactions, more slack capacity.",
			features:    []string{"FIFO", "Amortized-Trimming", "Indexed-Access"},
			newQueue: func(prealloc int) benchQueue {
				return flatAdapter{flatqueue.New[int](
					flatqueue.WithCapacity(prealloc),
					flatqueue.WithGrowthFactor(2.0),
				)}
			},
		},
		{
			name:        "RingQueue",
			pkgName:     "ringqueue",
			description: "Growable circular buffer; reuses freed slots in place at the cost of modular indexing.",
			features:    []string{"FIFO", "In-Place-Reuse"},
			newQueue: func(prealloc int) benchQueue {
				return ringqueue.New[int](prealloc)
			},
		},
		{
			name:        "ShiftQueue",
			pkgName:     "shiftqueue",
			description: "Naive append/reslice slice queue; keeps the whole backing array alive while any element remains.",
			features:    []string{"FIFO"},
			newQueue: func(prealloc int) benchQueue {
				return shiftqueue.New[int](prealloc)
			},
		},
	}
}

// outputMarkdownTable loads the JSON file and outputs a Markdown table.
func outputMarkdownTable(jsonFile string) {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file %q: %v\n", jsonFile, err)
		os.Exit(1)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling JSON: %v\n", err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions found in JSON.")
		os.Exit(1)
	}
	// Use the last session for the table.
	lastSession := sessions[len(sessions)-1]

	implMetaMap := make(map[string]Implementation)
	for _, impl := range getImplementations() {
		implMetaMap[impl.name] = impl
	}

	type tableRow struct {
		implementation string
		workload       string
		pkgName        string
		features       string
		throughput     float64
	}
	var rows []tableRow
	for _, bench := range lastSession.Benchmarks {
		meta, ok := implMetaMap[bench.Implementation]
		var pkgName, features string
		if ok {
			pkgName = meta.pkgName
			features = strings.Join(meta.features, ", ")
		}
		rows = append(rows, tableRow{
			implementation: bench.Implementation,
			workload:       bench.Workload,
			pkgName:        pkgName,
			features:       features,
			throughput:     bench.Throughput,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].workload != rows[j].workload {
			return rows[i].workload < rows[j].workload
		}
		return rows[i].throughput > rows[j].throughput
	})
	fmt.Println("## Last Session Benchmark Summary")
	fmt.Println()
	fmt.Println("| Workload        | Implementation   | Package     | Features                                | Throughput (ops/sec) |")
	fmt.Println("|-----------------|------------------|-------------|-----------------------------------------|----------------------|")
	for _, r := range rows {
		fmt.Printf("| %-15s | %-16s | %-11s | %-39s | %20.0f |\n",
			r.workload, r.implementation, r.pkgName, r.features, r.throughput)
	}
}

func main() {
	// Flags.
	iterFlag := flag.Int("iter", 0, "Override the number of iterations per workload (0 = config value)")
	durationFlag := flag.Duration("duration", 0, "Override the duration of each run (0 = config value)")
	configFile := flag.String("config", "", "Path to a YAML workload config; built-in workloads are used when empty")
	jsonExport := flag.Bool("json", false, "Export results as JSON to test-results.json")
	markdownTable := flag.Bool("markdown-table", false, "Output markdown table from test-results.json and exit")
	jsonFileForMarkdown := flag.String("jsonfile", "test-results.json", "Path to JSON file for markdown table")
	progressFlag := flag.Bool("progress", false, "Display a progress bar with ETA")
	preallocFlag := flag.Int("prealloc", 1024, "Initial capacity handed to each queue")
	flag.Parse()

	if *markdownTable {
		outputMarkdownTable(*jsonFileForMarkdown)
		return
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	iterations := cfg.Iterations
	if *iterFlag > 0 {
		iterations = *iterFlag
	}
	testDuration := time.Duration(cfg.Duration)
	if *durationFlag > 0 {
		testDuration = *durationFlag
	}

	workloads := cfg.Benchmarks()
	impls := getImplementations()
	totalTests := len(workloads) * iterations * len(impls)

	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("bench"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	sysInfo := gatherSystemInfo()
	fmt.Printf("System: %d CPU(s), %s, Go %s\n", sysInfo.NumCPU, sysInfo.GOARCH, runtime.Version())

	var results []BenchmarkResult
	for _, workload := range workloads {
		fmt.Printf("\n[Workload: %s push=%d pop=%d prefill=%d]\n",
			workload.Name, workload.PushBurst, workload.PopBurst, workload.Prefill)
		for iteration := 1; iteration <= iterations; iteration++ {
			for _, impl := range impls {
				runtime.GC()
				q := impl.newQueue(*preallocFlag)

				res := testbench.RunTimedWorkload(q, workload, testDuration, func(i int) int {
					return i
				})
				ops := res.Pushes + res.Pops
				throughput := float64(ops) / res.Elapsed.Seconds()

				fmt.Printf("  %-16s => pushes=%d, pops=%d, throughput=%.0f ops/s, final cap=%d, took=%v\n",
					impl.name, res.Pushes, res.Pops, throughput, res.FinalCap, res.Elapsed)

				results = append(results, BenchmarkResult{
					Implementation: impl.name,
					Workload:       workload.Name,
					Pushes:         res.Pushes,
					Pops:           res.Pops,
					TestDuration:   testDuration.String(),
					ActualElapsed:  res.Elapsed.String(),
					Throughput:     throughput,
					FinalCap:       res.FinalCap,
					Timestamp:      time.Now().Unix(),
					GoVersion:      runtime.Version(),
				})

				if bar != nil {
					bar.Add(1)
				}
			}
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	session := FullReport{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  sysInfo,
		Benchmarks:  results,
	}

	// If JSON export is requested, append the new session to test-results.json.
	if *jsonExport {
		const filename = "test-results.json"
		var previous []FullReport
		if _, err := os.Stat(filename); err == nil {
			data, err := os.ReadFile(filename)
			if err == nil && len(data) > 0 {
				json.Unmarshal(data, &previous)
			}
		}
		updated := append(previous, session)
		data, err := json.MarshalIndent(updated, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error marshalling JSON:", err)
			os.Exit(1)
		}
		if err = os.WriteFile(filename, data, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing JSON file:", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote results to %s\n", filename)
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	numCPU := runtime.NumCPU()
	goArch := runtime.GOARCH

	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      numCPU,
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		GOARCH:      goArch,
		TotalMemory: totalMemory,
	}
}
