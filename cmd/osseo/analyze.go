package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/chazu/osseo/pkg/analysis"
	"github.com/chazu/osseo/pkg/kernel/meshcsg"
	"github.com/chazu/osseo/pkg/kernel/sdfx"
	"github.com/chazu/osseo/pkg/slots"
)

var (
	slotIndex  int
	jobs       int
	kernelName string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <slots.yaml>",
	Short: "Run deviation/overlap analysis for the implant slots in a file",
	Long: `Analyze reads an ordered list of implant slots from a YAML file and
prints one report per slot. Each slot names the four marker points
(planned/real base and apex) and optionally the four radii (default 2.0 mm).

Slots are independent, so batches run across a bounded worker pool;
reports always print in slot order.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&slotIndex, "slot", 0, "analyze a single slot (1-based), 0 for all")
	analyzeCmd.Flags().IntVar(&jobs, "jobs", 4, "number of slots analyzed in parallel")
	analyzeCmd.Flags().StringVar(&kernelName, "kernel", "mesh", "geometry kernel: mesh or sdfx")
}

// slotResult pairs a finished slot with its outcome so batch output can
// be emitted in slot order.
type slotResult struct {
	report *analysis.Report
	err    error
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	analyzer, err := newAnalyzer(kernelName)
	if err != nil {
		return err
	}

	list, err := slots.Load(args[0])
	if err != nil {
		return err
	}

	if slotIndex != 0 {
		if slotIndex < 1 || slotIndex > len(list) {
			return fmt.Errorf("invalid slot index %d: file has %d slots", slotIndex, len(list))
		}
		list = list[slotIndex-1 : slotIndex]
	}

	results := analyzeAll(analyzer, list, jobs)

	failed := 0
	for i, s := range list {
		for _, w := range s.Warnings() {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", slotLabel(i, s), w)
		}

		fmt.Printf("=== %s ===\n", slotLabel(i, s))
		if results[i].err != nil {
			failed++
			fmt.Printf("analysis failed: %v\n\n", results[i].err)
			continue
		}
		fmt.Printf("%s\n\n", results[i].report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d slots failed", failed, len(list))
	}
	return nil
}

// analyzeAll runs every slot through the analyzer, at most jobs at a
// time. The analyzer is stateless and each slot's geometry is private to
// its call, so slots need no coordination beyond the semaphore.
func analyzeAll(analyzer *analysis.Analyzer, list []slots.Slot, jobs int) []slotResult {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]slotResult, len(list))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

	for i := range list {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			in, err := list[i].Input()
			if err != nil {
				results[i] = slotResult{err: err}
				return
			}
			report, err := analyzer.Analyze(in)
			results[i] = slotResult{report: report, err: err}
		}(i)
	}
	wg.Wait()

	return results
}

func newAnalyzer(name string) (*analysis.Analyzer, error) {
	switch name {
	case "mesh":
		return &analysis.Analyzer{Kernel: meshcsg.New()}, nil
	case "sdfx":
		return &analysis.Analyzer{Kernel: sdfx.New()}, nil
	default:
		return nil, errors.New("unknown kernel: " + name + " (want mesh or sdfx)")
	}
}

func slotLabel(i int, s slots.Slot) string {
	if s.Name != "" {
		return fmt.Sprintf("implant %d (%s)", i+1, s.Name)
	}
	return fmt.Sprintf("implant %d", i+1)
}
