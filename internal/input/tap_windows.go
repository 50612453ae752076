//go:build windows

package input

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmQuit        = 0x0012
	wmKeyDown     = 0x0100
	wmSysKeyDown  = 0x0104
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
)

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	PtX     int32
	PtY     int32
}

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// Low-level hooks carry no user data, so the hook procs route to the
// monitor id that installed them.
var (
	activeID atomic.Uint64

	callbacksOnce sync.Once
	mouseProc     uintptr
	keyboardProc  uintptr
)

type tap struct {
	threadID uint32
	done     chan struct{}
}

func hookCallbacks() (uintptr, uintptr) {
	callbacksOnce.Do(func() {
		mouseProc = windows.NewCallback(mouseHookProc)
		keyboardProc = windows.NewCallback(keyboardHookProc)
	})
	return mouseProc, keyboardProc
}

func mouseHookProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		ev := Event{Kind: KindMouse, Raw: lParam, Time: time.Now()}
		switch wParam {
		case wmLButtonDown:
			ev.Button, ev.Down = 0, true
		case wmLButtonUp:
			ev.Button = 0
		case wmRButtonDown:
			ev.Button, ev.Down = 1, true
		case wmRButtonUp:
			ev.Button = 1
		case wmMButtonDown:
			ev.Button, ev.Down = 2, true
		case wmMButtonUp:
			ev.Button = 2
		case wmXButtonDown:
			ev.Button, ev.Down = 3, true
		case wmXButtonUp:
			ev.Button = 3
		default:
			ev.Kind = KindOther
		}
		if ev.Kind != KindOther {
			dispatch(activeID.Load(), ev)
		}
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func keyboardHookProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 && (wParam == wmKeyDown || wParam == wmSysKeyDown) {
		hs := (*kbdllHookStruct)(unsafe.Pointer(lParam))
		dispatch(activeID.Load(), Event{
			Kind:    KindKey,
			KeyCode: uint16(hs.VkCode),
			Down:    true,
			Raw:     lParam,
			Time:    time.Now(),
		})
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func (m *Monitor) startPlatform() error {
	if !activeID.CompareAndSwap(0, m.id) {
		return fmt.Errorf("%w: another monitor owns the hooks", ErrTapCreate)
	}

	mouseCB, keyCB := hookCallbacks()
	t := &tap{done: make(chan struct{})}
	ready := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(t.done)

		mouseHook, _, err := procSetWindowsHookEx.Call(whMouseLL, mouseCB, 0, 0)
		if mouseHook == 0 {
			ready <- fmt.Errorf("%w: mouse hook: %v", ErrTapCreate, err)
			return
		}
		defer procUnhookWindowsHookEx.Call(mouseHook)

		keyHook, _, err := procSetWindowsHookEx.Call(whKeyboardLL, keyCB, 0, 0)
		if keyHook == 0 {
			ready <- fmt.Errorf("%w: keyboard hook: %v", ErrTapCreate, err)
			return
		}
		defer procUnhookWindowsHookEx.Call(keyHook)

		t.threadID = windows.GetCurrentThreadId()
		ready <- nil

		// Hooks are serviced while this thread pumps messages
		var qm msg
		for {
			ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&qm)), 0, 0, 0)
			if int32(ret) <= 0 {
				return
			}
		}
	}()

	if err := <-ready; err != nil {
		<-t.done
		activeID.Store(0)
		return err
	}
	m.tap = t
	return nil
}

func (m *Monitor) stopPlatform() error {
	if m.tap == nil {
		return nil
	}
	procPostThreadMessage.Call(uintptr(m.tap.threadID), wmQuit, 0, 0)
	<-m.tap.done
	m.tap = nil
	activeID.CompareAndSwap(m.id, 0)
	return nil
}
