// Package dataset reads capture directories back into structured records
// and clears them.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrTooFewComponents is returned for names with fewer than three "_" fields
	ErrTooFewComponents = errors.New("file name has fewer than 3 components")
	// ErrBadTimestamp is returned when the first field is not a number
	ErrBadTimestamp = errors.New("invalid timestamp")
)

// Record is one parsed capture file
type Record struct {
	File       string    `json:"file"`
	Timestamp  string    `json:"timestamp"`
	Time       time.Time `json:"time"`
	KeyPressed string    `json:"key_pressed"`
	WindowName string    `json:"window_name"`
	PHash      string    `json:"phash,omitempty"`
}

// ParseName splits a capture file name into its fields. Empty fields
// between repeated underscores are dropped and only the first three
// fields are used, so window names containing "_" are truncated and
// mouse captures ("<ts>_<window>") do not parse.
func ParseName(name string) (Record, error) {
	base := filepath.Base(name)
	if isCapture(base) {
		base = base[:len(base)-len(filepath.Ext(base))]
	}
	parts := strings.FieldsFunc(base, func(r rune) bool { return r == '_' })
	if len(parts) < 3 {
		return Record{}, fmt.Errorf("%s: %w", name, ErrTooFewComponents)
	}

	ts, err := parseUnix(parts[0])
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w: %q", name, ErrBadTimestamp, parts[0])
	}

	return Record{
		File:       filepath.Base(name),
		Timestamp:  parts[0],
		Time:       ts,
		KeyPressed: parts[1],
		WindowName: norm.NFC.String(parts[2]),
	}, nil
}

// parseUnix reads decimal epoch seconds. Plain "<int>.<frac>" text is
// converted digit by digit so the nanoseconds match what was written.
func parseUnix(s string) (time.Time, error) {
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, err
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return time.Time{}, ErrBadTimestamp
	}

	whole, frac, _ := strings.Cut(s, ".")
	sec, errSec := strconv.ParseInt(whole, 10, 64)
	if len(frac) > 9 {
		frac = frac[:9]
	}
	nsec, errNsec := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
	if errSec == nil && errNsec == nil && sec >= 0 {
		return time.Unix(sec, nsec).UTC(), nil
	}

	w, f := math.Modf(secs)
	return time.Unix(int64(w), int64(math.Round(f*1e9))).UTC(), nil
}
