//go:build darwin

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

CGEventRef kabinEventCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFMachPortRef kabinTapCreate(uintptr_t refcon) {
    CGEventMask mask = CGEventMaskBit(kCGEventLeftMouseDown) |
                       CGEventMaskBit(kCGEventLeftMouseUp) |
                       CGEventMaskBit(kCGEventRightMouseDown) |
                       CGEventMaskBit(kCGEventRightMouseUp) |
                       CGEventMaskBit(kCGEventOtherMouseDown) |
                       CGEventMaskBit(kCGEventOtherMouseUp) |
                       CGEventMaskBit(kCGEventKeyDown);
    return CGEventTapCreate(
        kCGHIDEventTap,
        kCGHeadInsertEventTap,
        kCGEventTapOptionDefault,
        mask,
        kabinEventCallback,
        (void*)refcon
    );
}

static CFRunLoopSourceRef kabinTapAttach(CFMachPortRef tap) {
    CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
    CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
    CGEventTapEnable(tap, true);
    return source;
}

static void kabinTapRelease(CFMachPortRef tap, CFRunLoopSourceRef source) {
    CGEventTapEnable(tap, false);
    CFRunLoopRemoveSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
    CFMachPortInvalidate(tap);
    CFRelease(source);
    CFRelease(tap);
}

// kabinRunSlice runs the current run loop for at most half a second so the
// worker can notice a stop request that raced ahead of the loop starting.
static void kabinRunSlice(void) {
    CFRunLoopRunInMode(kCFRunLoopDefaultMode, 0.5, false);
}

static int kabinTrusted(void) {
    return AXIsProcessTrusted() ? 1 : 0;
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
	"unsafe"
)

type tap struct {
	port    C.CFMachPortRef
	runLoop C.CFRunLoopRef
	stop    atomic.Bool
	done    chan struct{}
}

//export kabinEventCallback
func kabinEventCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	id := uint64(uintptr(refcon))

	switch eventType {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		if m := lookup(id); m != nil && m.tap != nil {
			m.log.Warn().Msg("input tap disabled by the system, re-enabling")
			C.CGEventTapEnable(m.tap.port, C.bool(true))
		}
		return event
	}

	dispatch(id, classify(eventType, event))
	return event
}

func classify(eventType C.CGEventType, event C.CGEventRef) Event {
	ev := Event{Raw: uintptr(unsafe.Pointer(event)), Time: time.Now()}
	switch eventType {
	case C.kCGEventKeyDown:
		ev.Kind = KindKey
		ev.Down = true
		ev.KeyCode = uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	case C.kCGEventLeftMouseDown, C.kCGEventRightMouseDown, C.kCGEventOtherMouseDown:
		ev.Kind = KindMouse
		ev.Down = true
		ev.Button = int(C.CGEventGetIntegerValueField(event, C.kCGMouseEventButtonNumber))
	case C.kCGEventLeftMouseUp, C.kCGEventRightMouseUp, C.kCGEventOtherMouseUp:
		ev.Kind = KindMouse
		ev.Button = int(C.CGEventGetIntegerValueField(event, C.kCGMouseEventButtonNumber))
	}
	return ev
}

func (m *Monitor) startPlatform() error {
	t := &tap{done: make(chan struct{})}
	ready := make(chan error, 1)
	id := m.id
	m.tap = t

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(t.done)

		port := C.kabinTapCreate(C.uintptr_t(id))
		if port == 0 {
			if C.kabinTrusted() == 0 {
				ready <- fmt.Errorf("%w: %w", ErrTapCreate, ErrPermissionDenied)
			} else {
				ready <- ErrTapCreate
			}
			return
		}
		t.port = port
		t.runLoop = C.CFRunLoopGetCurrent()
		source := C.kabinTapAttach(port)
		ready <- nil

		runUntilStopped(&t.stop, func() { C.kabinRunSlice() })
		C.kabinTapRelease(port, source)
	}()

	if err := <-ready; err != nil {
		<-t.done
		m.tap = nil
		return err
	}
	return nil
}

func (m *Monitor) stopPlatform() error {
	if m.tap == nil {
		return nil
	}
	m.tap.stop.Store(true)
	C.CFRunLoopStop(m.tap.runLoop)
	<-m.tap.done
	m.tap = nil
	return nil
}
