//go:build windows

package window

import (
	"fmt"
	"path/filepath"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetWindowTextW   = user32.NewProc("GetWindowTextW")
	procGetWindowTextLen = user32.NewProc("GetWindowTextLengthW")
	procGetWindowRect    = user32.NewProc("GetWindowRect")
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type windowsSource struct{}

// NewSource returns the foreground-window backed source
func NewSource() Source {
	return windowsSource{}
}

func (windowsSource) Frontmost() (App, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return App{}, fmt.Errorf("no foreground window")
	}
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return App{}, err
	}
	return App{PID: int(pid), Name: processName(pid)}, nil
}

// OnScreen only reports the foreground window; Windows keeps it first in z-order.
func (windowsSource) OnScreen() ([]Info, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return nil, nil
	}
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return nil, err
	}
	info := Info{PID: int(pid), WindowID: int(hwnd), Name: windowText(hwnd)}
	var r rect
	if ret, _, _ := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r))); ret != 0 {
		info.Bounds = &Rect{
			X:      float64(r.Left),
			Y:      float64(r.Top),
			Width:  float64(r.Right - r.Left),
			Height: float64(r.Bottom - r.Top),
		}
	}
	return []Info{info}, nil
}

func windowText(hwnd windows.HWND) string {
	n, _, _ := procGetWindowTextLen.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf)
}

func processName(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}
	base := filepath.Base(windows.UTF16ToString(buf[:size]))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
