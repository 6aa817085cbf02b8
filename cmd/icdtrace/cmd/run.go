package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	repcsv "github.com/OpenTraceLab/icdtrace/internal/report/csv"

	"github.com/OpenTraceLab/icdtrace/internal/driverfile"
	"github.com/OpenTraceLab/icdtrace/pkg/netlist"
	"github.com/OpenTraceLab/icdtrace/pkg/pull"
	"github.com/OpenTraceLab/icdtrace/pkg/report"
	"github.com/OpenTraceLab/icdtrace/pkg/trace"
)

var outPath string

var runCmd = &cobra.Command{
	Use:   "run <driver.csv>",
	Short: "Run every CHECKTRACE/CHECKVOLT request in a driver file and write a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "report output path (default: stdout)")
}

func runRun(cmd *cobra.Command, args []string) error {
	driverPath := args[0]

	store, queries, _, warnings, err := driverfile.Load(driverPath)
	if err != nil {
		return fmt.Errorf("failed to load driver file: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, w)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "loaded %d queued request(s)\n", len(queries))
	}

	records := make([]report.Record, 0, len(queries))
	for _, q := range queries {
		if q.Comment != "" {
			records = append(records, report.Record{Comment: q.Comment})
		}
		switch q.Kind {
		case driverfile.CheckTrace:
			records = append(records, runCheckTrace(store, q))
		case driverfile.CheckVolt:
			records = append(records, runCheckVolt(store, q))
		}
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to open report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := repcsv.WriteCSV(out, records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func runCheckTrace(store *netlist.Store, q driverfile.Query) report.Record {
	found, path, err := trace.Query(store, q.From, q.To)
	if err != nil {
		fmt.Fprintf(os.Stderr, "icdtrace: CHECKTRACE %s -> %s: %v\n", q.From, q.To, err)
	}
	var pulls []string
	var voltages []float64
	if found || q.DesiredVoltage != nil {
		pr := pull.ResolveAlongPath(store, path)
		pulls, voltages = pr.Pulls, pr.Voltages
	}
	// The ignore flag is read after pull resolution, which may have
	// augmented the IgnoreSet with the endpoints themselves.
	ignoreFlag := endpointIgnored(store, q.From) || endpointIgnored(store, q.To)
	return report.NewTraceRecord(q.From, q.To, q.DesiredVoltage, found, ignoreFlag, path, pulls, voltages)
}

func runCheckVolt(store *netlist.Store, q driverfile.Query) report.Record {
	result, err := pull.Resolve(store, q.From)
	if err != nil {
		fmt.Fprintf(os.Stderr, "icdtrace: CHECKVOLT %s: %v\n", q.From, err)
	}
	ignoreFlag := result.Ignored || endpointIgnored(store, q.From)
	return report.NewPullRecord(q.From, q.DesiredVoltage, ignoreFlag, result.Path, result.Pulls, result.Voltages)
}

func endpointIgnored(store *netlist.Store, qualified string) bool {
	board, signal, ok := netlist.SplitQualifiedSignal(qualified)
	if !ok {
		return false
	}
	return store.Ignore.HasSignal(netlist.QualifiedSignal(board, signal))
}
