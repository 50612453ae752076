package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Write renders records as "tsv" or "json"
func Write(w io.Writer, records []Record, includeHeader bool, format string) error {
	switch format {
	case "tsv":
		return writeTSV(w, records, includeHeader)
	case "json":
		return writeJSON(w, records)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeTSV(w io.Writer, records []Record, includeHeader bool) error {
	withHash := false
	for _, r := range records {
		if r.PHash != "" {
			withHash = true
			break
		}
	}

	if includeHeader {
		header := "timestamp\tkey_pressed\twindow_name\tfile"
		if withHash {
			header += "\tphash"
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
	}

	for _, r := range records {
		line := fmt.Sprintf("%s\t%s\t%s\t%s", r.Timestamp, r.KeyPressed, escapeTabs(r.WindowName), r.File)
		if withHash {
			line += "\t" + r.PHash
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func escapeTabs(text string) string {
	return strings.NewReplacer("\t", "\\t", "\n", "\\n").Replace(text)
}
