//go:build darwin

package window

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework AppKit
#include <AppKit/AppKit.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    int pid;
    int number;
    char *name;
    int hasBounds;
    double x, y, w, h;
} kabinWindow;

static char *kabinCopyCFString(CFStringRef s) {
    if (s == NULL) {
        return NULL;
    }
    CFIndex len = CFStringGetLength(s);
    CFIndex max = CFStringGetMaximumSizeForEncoding(len, kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (buf == NULL) {
        return NULL;
    }
    if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

static int kabinFrontmost(int *pid, char **name) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (app == nil) {
            return 0;
        }
        *pid = (int)app.processIdentifier;
        *name = app.localizedName ? strdup([app.localizedName UTF8String]) : NULL;
        return 1;
    }
}

static int kabinNumber(CFDictionaryRef d, CFStringRef key, int *out) {
    CFNumberRef n = (CFNumberRef)CFDictionaryGetValue(d, key);
    if (n == NULL) {
        return 0;
    }
    return CFNumberGetValue(n, kCFNumberIntType, out);
}

static kabinWindow *kabinOnScreen(int *count) {
    *count = 0;
    CFArrayRef list = CGWindowListCopyWindowInfo(kCGWindowListOptionOnScreenOnly, kCGNullWindowID);
    if (list == NULL) {
        return NULL;
    }
    CFIndex n = CFArrayGetCount(list);
    kabinWindow *out = calloc(n > 0 ? n : 1, sizeof(kabinWindow));
    if (out == NULL) {
        CFRelease(list);
        return NULL;
    }
    int j = 0;
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = (CFDictionaryRef)CFArrayGetValueAtIndex(list, i);
        kabinWindow *w = &out[j];
        if (!kabinNumber(d, kCGWindowOwnerPID, &w->pid)) {
            continue;
        }
        kabinNumber(d, kCGWindowNumber, &w->number);
        w->name = kabinCopyCFString((CFStringRef)CFDictionaryGetValue(d, kCGWindowName));
        CFDictionaryRef b = (CFDictionaryRef)CFDictionaryGetValue(d, kCGWindowBounds);
        CGRect r;
        if (b != NULL && CGRectMakeWithDictionaryRepresentation(b, &r)) {
            w->hasBounds = 1;
            w->x = r.origin.x;
            w->y = r.origin.y;
            w->w = r.size.width;
            w->h = r.size.height;
        }
        j++;
    }
    CFRelease(list);
    *count = j;
    return out;
}

static void kabinFreeWindows(kabinWindow *ws, int count) {
    for (int i = 0; i < count; i++) {
        free(ws[i].name);
    }
    free(ws);
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

type darwinSource struct{}

// NewSource returns the NSWorkspace / CGWindowList backed source
func NewSource() Source {
	return darwinSource{}
}

func (darwinSource) Frontmost() (App, error) {
	var pid C.int
	var name *C.char
	if C.kabinFrontmost(&pid, &name) == 0 {
		return App{}, errors.New("no frontmost application")
	}
	app := App{PID: int(pid)}
	if name != nil {
		app.Name = C.GoString(name)
		C.free(unsafe.Pointer(name))
	}
	return app, nil
}

func (darwinSource) OnScreen() ([]Info, error) {
	var count C.int
	list := C.kabinOnScreen(&count)
	if list == nil {
		return nil, errors.New("window list unavailable")
	}
	defer C.kabinFreeWindows(list, count)

	raw := unsafe.Slice(list, int(count))
	out := make([]Info, 0, len(raw))
	for _, w := range raw {
		info := Info{PID: int(w.pid), WindowID: int(w.number)}
		if w.name != nil {
			info.Name = C.GoString(w.name)
		}
		if w.hasBounds != 0 {
			info.Bounds = &Rect{X: float64(w.x), Y: float64(w.y), Width: float64(w.w), Height: float64(w.h)}
		}
		out = append(out, info)
	}
	return out, nil
}
