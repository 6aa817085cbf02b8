package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/OpenTraceLab/icdtrace/pkg/report"
)

// WriteCSV renders records in a fixed column order:
// from,to,desiredVoltage,traceFlag,ignoreFlag,voltMatchFlag,commonVoltFlag,
// commonVoltage,path,pulls,voltages. A record whose Comment is set (and
// whose From is empty) renders as a standalone passthrough line instead of
// a data row. Voltages render with two decimals; a flag whose precondition
// is absent renders as #N/A, as does the common voltage when no single
// voltage was agreed on.
func WriteCSV(w io.Writer, records []report.Record) error {
	cw := csv.NewWriter(w)
	for _, rec := range records {
		if rec.Comment != "" && rec.From == "" {
			if err := cw.Write([]string{rec.Comment}); err != nil {
				return fmt.Errorf("report/csv: %w", err)
			}
			continue
		}
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("report/csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report/csv: %w", err)
	}
	return nil
}

func row(rec report.Record) []string {
	return []string{
		rec.From,
		rec.To,
		desiredVoltageField(rec.DesiredVoltage),
		rec.TraceFlag.String(),
		boolField(rec.IgnoreFlag),
		rec.VoltMatchFlag.String(),
		rec.CommonVoltFlag.String(),
		commonVoltageField(rec),
		strings.Join(rec.Path, ";"),
		strings.Join(rec.Pulls, ";"),
		joinVoltages(rec.Voltages),
	}
}

func desiredVoltageField(v *float64) string {
	if v == nil {
		return ""
	}
	return voltField(*v)
}

func commonVoltageField(rec report.Record) string {
	if rec.CommonVoltFlag != report.True {
		return "#N/A"
	}
	return voltField(rec.CommonVoltage)
}

func boolField(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func voltField(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func joinVoltages(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = voltField(v)
	}
	return strings.Join(parts, ";")
}
