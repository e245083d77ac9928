// ABOUTME: Command-line benchmark runner for ranking quality scenarios
// ABOUTME: Executes built-in scenarios and outputs JSON results

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lumen-social/lumen/benchmarks/recs"
)

func main() {
	scenarioIDs := flag.String("scenario", "", "Comma-separated scenario IDs to run. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	var ids []string
	if *scenarioIDs != "" {
		ids = strings.Split(*scenarioIDs, ",")
	}

	runner := recs.NewBenchmarkRunner(*verbose)
	report, err := runner.Run(ids)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	if err := recs.WriteReport(report, *outputPath); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	fmt.Printf("Ran %d scenario(s): pass rate %.0f%%, mean MRR %.3f\n",
		len(report.Results), report.PassRate*100, report.MeanMRR)
	fmt.Printf("Results written to %s\n", *outputPath)

	if report.PassRate < 1.0 {
		os.Exit(1)
	}
}
