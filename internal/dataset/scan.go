package dataset

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corona10/goimagehash"
)

// ScanOptions controls Scan
type ScanOptions struct {
	// PerceptualHash adds a perceptual hash of each image to its record
	PerceptualHash bool
}

// Skip describes a png file that could not be turned into a record
type Skip struct {
	File string
	Err  error
}

// Result is the outcome of scanning a directory
type Result struct {
	Records []Record
	Skipped []Skip
}

func isCapture(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".png")
}

// Scan parses every png file in dir, sorted by capture time. Files whose
// names do not parse are reported in Skipped rather than failing the scan.
func Scan(dir string, opts ScanOptions) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", dir, err)
	}

	var res Result
	for _, e := range entries {
		if e.IsDir() || !isCapture(e.Name()) {
			continue
		}
		rec, err := ParseName(e.Name())
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{File: e.Name(), Err: err})
			continue
		}
		if opts.PerceptualHash {
			h, err := perceptualHash(filepath.Join(dir, e.Name()))
			if err != nil {
				res.Skipped = append(res.Skipped, Skip{File: e.Name(), Err: err})
				continue
			}
			rec.PHash = h
		}
		res.Records = append(res.Records, rec)
	}

	sort.SliceStable(res.Records, func(i, j int) bool {
		return res.Records[i].Time.Before(res.Records[j].Time)
	})
	return res, nil
}

func perceptualHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", filepath.Base(path), err)
	}
	return fmt.Sprintf("%016x", h.GetHash()), nil
}

// Clean removes every png file directly inside dir and returns how many
// were deleted. Other files and subdirectories are left alone.
func Clean(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	removed := 0
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !isCapture(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
