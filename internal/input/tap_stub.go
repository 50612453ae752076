//go:build !darwin && !windows

package input

type tap struct{}

func (m *Monitor) startPlatform() error {
	return ErrUnsupported
}

func (m *Monitor) stopPlatform() error {
	return nil
}
