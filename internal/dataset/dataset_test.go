package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseNameRoundTrip(t *testing.T) {
	for _, name := range []string{"1690000000.123_65_MyApp", "1690000000.123_65_MyApp.png"} {
		rec, err := ParseName(name)
		if err != nil {
			t.Fatalf("ParseName(%q) returned error: %v", name, err)
		}
		if rec.Timestamp != "1690000000.123" {
			t.Errorf("Expected timestamp 1690000000.123, got %q", rec.Timestamp)
		}
		if rec.KeyPressed != "65" {
			t.Errorf("Expected keyPressed 65, got %q", rec.KeyPressed)
		}
		if rec.WindowName != "MyApp" {
			t.Errorf("Expected windowName MyApp, got %q", rec.WindowName)
		}
		want := time.Unix(1690000000, 123000000).UTC()
		if !rec.Time.Equal(want) {
			t.Errorf("Expected time %v, got %v", want, rec.Time)
		}
	}
}

func TestParseNameEdgeCases(t *testing.T) {
	tests := []struct {
		name       string
		wantErr    error
		wantKey    string
		wantWindow string
	}{
		{name: "1690000000.5_Finder.png", wantErr: ErrTooFewComponents},
		{name: "1690000000.5.png", wantErr: ErrTooFewComponents},
		{name: "abc_65_MyApp.png", wantErr: ErrBadTimestamp},
		{name: "NaN_65_MyApp.png", wantErr: ErrBadTimestamp},
		{name: "1690000000.5__65__MyApp.png", wantKey: "65", wantWindow: "MyApp"},
		{name: "1690000000.5_65_my_app.png", wantKey: "65", wantWindow: "my"},
		{name: "1690000000.5_65_Café.png", wantKey: "65", wantWindow: "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseName(tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if rec.KeyPressed != tt.wantKey || rec.WindowName != tt.wantWindow {
				t.Errorf("Got key=%q window=%q, want key=%q window=%q",
					rec.KeyPressed, rec.WindowName, tt.wantKey, tt.wantWindow)
			}
		})
	}
}

func writePNG(t *testing.T, path string, shade uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetGray(x, y, color.Gray{Y: shade + uint8(x*y)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func populate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "1690000002.0_36_Terminal.png"), 10)
	writePNG(t, filepath.Join(dir, "1690000001.5_65_Safari.png"), 90)
	writePNG(t, filepath.Join(dir, "1690000003.0_Finder.png"), 30)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestScan(t *testing.T) {
	dir := populate(t)

	res, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(res.Records))
	}
	if res.Records[0].WindowName != "Safari" || res.Records[1].WindowName != "Terminal" {
		t.Errorf("Expected records sorted by time, got %+v", res.Records)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].File != "1690000003.0_Finder.png" {
		t.Errorf("Expected the mouse capture to be skipped, got %+v", res.Skipped)
	}
	if res.Records[0].PHash != "" {
		t.Error("Expected no hash without the option")
	}
}

func TestScanPerceptualHash(t *testing.T) {
	dir := populate(t)

	res, err := Scan(dir, ScanOptions{PerceptualHash: true})
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	for _, r := range res.Records {
		if len(r.PHash) != 16 {
			t.Errorf("Expected 16 hex digit hash for %s, got %q", r.File, r.PHash)
		}
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope"), ScanOptions{}); err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestClean(t *testing.T) {
	dir := populate(t)

	n, err := Clean(dir)
	if err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 files removed, got %d", n)
	}

	entries, _ := os.ReadDir(dir)
	var left []string
	for _, e := range entries {
		left = append(left, e.Name())
	}
	if strings.Join(left, ",") != "notes.txt,sub.png" {
		t.Errorf("Expected only non-png entries to remain, got %v", left)
	}
}

func sampleRecords() []Record {
	return []Record{
		{File: "1690000001.5_65_Safari.png", Timestamp: "1690000001.5", KeyPressed: "65", WindowName: "Safari"},
		{File: "1690000002.0_36_Terminal.png", Timestamp: "1690000002.0", KeyPressed: "36", WindowName: "Terminal"},
	}
}

func TestWriteTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords(), true, "tsv"); err != nil {
		t.Fatalf("Write tsv returned error: %v", err)
	}

	expected := strings.Join([]string{
		"timestamp\tkey_pressed\twindow_name\tfile",
		"1690000001.5\t65\tSafari\t1690000001.5_65_Safari.png",
		"1690000002.0\t36\tTerminal\t1690000002.0_36_Terminal.png",
	}, "\n") + "\n"
	if got := buf.String(); got != expected {
		t.Fatalf("tsv output mismatch:\nexpected: %q\nactual:   %q", expected, got)
	}
}

func TestWriteTSVWithHash(t *testing.T) {
	recs := sampleRecords()
	recs[0].PHash = "00ff00ff00ff00ff"

	var buf bytes.Buffer
	if err := Write(&buf, recs, true, "tsv"); err != nil {
		t.Fatalf("Write tsv returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasSuffix(lines[0], "\tphash") {
		t.Errorf("Expected phash column, got %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "\t00ff00ff00ff00ff") {
		t.Errorf("Expected hash value, got %q", lines[1])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords(), false, "json"); err != nil {
		t.Fatalf("Write json returned error: %v", err)
	}
	var got []Record
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid json: %v", err)
	}
	if len(got) != 2 || got[1].KeyPressed != "36" {
		t.Errorf("Unexpected decoded records: %+v", got)
	}

	buf.Reset()
	if err := Write(&buf, nil, false, "json"); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Expected empty array, got %q", buf.String())
	}
}

func TestWriteUnsupported(t *testing.T) {
	if err := Write(&bytes.Buffer{}, nil, true, "xml"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
