package ui

import (
	"fmt"
	"io"
	"time"
)

// Result describes the outcome of compiling one job.
type Result struct {
	Job       string
	DagName   string
	Output    string
	Nodes     int
	Tasks     int
	Relations int
	Duration  time.Duration
	Err       error
}

// PrintSummary writes one line per result followed by a totals line.
func PrintSummary(w io.Writer, results []Result) {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s %s %s\n", BoldRed("✗"), Bold(r.Job), Red(r.Err.Error()))
			continue
		}
		dest := r.Output
		if dest == "" {
			dest = "stdout"
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			BoldGreen("✓"),
			Bold(r.Job),
			Dim(fmt.Sprintf("(%d nodes, %d tasks, %d relations)", r.Nodes, r.Tasks, r.Relations)),
			Dim("→"),
			dest,
			Dim(r.Duration.Round(time.Millisecond).String()),
		)
	}

	switch {
	case failed == 0:
		fmt.Fprintf(w, "%s\n", Green(fmt.Sprintf("%d workflow(s) compiled", len(results))))
	case failed == len(results):
		fmt.Fprintf(w, "%s\n", Red(fmt.Sprintf("%d workflow(s) failed", failed)))
	default:
		fmt.Fprintf(w, "%s\n", Yellow(fmt.Sprintf("%d of %d workflow(s) failed", failed, len(results))))
	}
}
