package screen

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	return img
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Unix(1690000000, 0), "1690000000.0"},
		{time.Unix(1690000000, 500000000), "1690000000.5"},
		{time.Unix(1690000000, 123000000), "1690000000.123"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	got := FileName(time.Unix(1690000000, 123000000), "36_Terminal")
	if got != "1690000000.123_36_Terminal.png" {
		t.Errorf("Unexpected file name %q", got)
	}
}

func TestCaptureWritesPNG(t *testing.T) {
	dir := t.TempDir()
	c := New(dir,
		WithGrabber(GrabberFunc(func() (image.Image, error) { return solid(4, 3), nil })),
		WithClock(fixedClock(time.Unix(1690000000, 250000000))),
	)

	path, err := c.Capture("Finder")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if want := filepath.Join(dir, "1690000000.25_Finder.png"); path != want {
		t.Errorf("Expected %s, got %s", want, path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Capture is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("Expected 4x3 image, got %v", b)
	}
}

func TestCaptureFailuresLeaveNoFile(t *testing.T) {
	tests := []struct {
		name    string
		grabber Grabber
		want    error
	}{
		{"grab error", GrabberFunc(func() (image.Image, error) { return nil, errors.New("denied") }), nil},
		{"nil image", GrabberFunc(func() (image.Image, error) { return nil, nil }), ErrNoImage},
		{"empty image", GrabberFunc(func() (image.Image, error) { return image.NewRGBA(image.Rectangle{}), nil }), ErrNoImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			c := New(dir, WithGrabber(tt.grabber))
			_, err := c.Capture("x")
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("Expected no files, found %d", len(entries))
			}
		})
	}
}

func TestCaptureMissingDirectory(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "missing"),
		WithGrabber(GrabberFunc(func() (image.Image, error) { return solid(1, 1), nil })))
	if _, err := c.Capture("x"); err == nil {
		t.Error("Expected write into a missing directory to fail")
	}

	c.SetDirectory("")
	if _, err := c.Capture("x"); !errors.Is(err, ErrNoDirectory) {
		t.Errorf("Expected ErrNoDirectory, got %v", err)
	}
}

func TestSetDirectory(t *testing.T) {
	d1, d2 := t.TempDir(), t.TempDir()
	c := New(d1, WithGrabber(GrabberFunc(func() (image.Image, error) { return solid(1, 1), nil })))
	if c.Directory() != d1 {
		t.Fatalf("Expected %s, got %s", d1, c.Directory())
	}
	c.SetDirectory(d2)
	path, err := c.Capture("x")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if filepath.Dir(path) != d2 {
		t.Errorf("Expected capture in %s, got %s", d2, path)
	}
}
