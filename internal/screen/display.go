package screen

import (
	"image"

	"github.com/kbinani/screenshot"
)

// DisplayGrabber captures the union of all active displays
type DisplayGrabber struct{}

// Grab captures every attached display as one image
func (DisplayGrabber) Grab() (image.Image, error) {
	bounds, err := VirtualBounds()
	if err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// VirtualBounds returns the rectangle covering all active displays
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	bounds := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	return bounds, nil
}
