//go:build !darwin && !windows

package window

type stubSource struct{}

// NewSource returns a source that never resolves
func NewSource() Source {
	return stubSource{}
}

func (stubSource) Frontmost() (App, error)   { return App{}, ErrUnsupported }
func (stubSource) OnScreen() ([]Info, error) { return nil, ErrUnsupported }
