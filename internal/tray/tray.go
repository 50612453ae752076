// Package tray provides system tray functionality using getlantern/systray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// MenuItem represents a menu item
type MenuItem struct {
	ID       int
	Title    string
	Callback func()
	disabled bool
	checked  bool
	item     *systray.MenuItem
}

// Tray manages the system tray icon and menu
type Tray struct {
	mu      sync.Mutex
	title   string
	tooltip string
	items   []*MenuItem
	onReady func()
	readyCh chan struct{}
	quitCh  chan struct{}
}

// New creates a new system tray
func New(title, tooltip string) *Tray {
	return &Tray{
		title:   title,
		tooltip: tooltip,
		items:   make([]*MenuItem, 0),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// OnReady registers a function run once the menu exists
func (t *Tray) OnReady(fn func()) {
	t.onReady = fn
}

// AddMenuItem adds a menu item to the tray and returns its id
func (t *Tray) AddMenuItem(title string, callback func()) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := len(t.items)
	t.items = append(t.items, &MenuItem{
		ID:       id,
		Title:    title,
		Callback: callback,
	})
	return id
}

// AddSeparator adds a separator to the menu
func (t *Tray) AddSeparator() {
	t.mu.Lock()
	t.items = append(t.items, nil) // nil indicates separator
	t.mu.Unlock()
}

// SetItemChecked sets the checked state of a menu item
func (t *Tray) SetItemChecked(id int, checked bool) {
	t.withItem(id, func(mi *MenuItem) {
		mi.checked = checked
		if mi.item == nil {
			return
		}
		if checked {
			mi.item.Check()
		} else {
			mi.item.Uncheck()
		}
	})
}

// SetItemEnabled enables or greys out a menu item
func (t *Tray) SetItemEnabled(id int, enabled bool) {
	t.withItem(id, func(mi *MenuItem) {
		mi.disabled = !enabled
		if mi.item == nil {
			return
		}
		if enabled {
			mi.item.Enable()
		} else {
			mi.item.Disable()
		}
	})
}

// SetTitle changes the text shown next to the tray icon
func (t *Tray) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
	select {
	case <-t.readyCh:
		systray.SetTitle(title)
	default:
	}
}

func (t *Tray) withItem(id int, fn func(*MenuItem)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id >= 0 && id < len(t.items) && t.items[id] != nil {
		fn(t.items[id])
	}
}

// Run starts the tray event loop (blocks)
func (t *Tray) Run() {
	systray.Run(t.setupMenu, func() { close(t.quitCh) })
}

// setupMenu is called when systray is ready
func (t *Tray) setupMenu() {
	t.mu.Lock()
	systray.SetTitle(t.title)
	systray.SetTooltip(t.tooltip)
	systray.SetIcon(getIcon())

	for _, menuItem := range t.items {
		if menuItem == nil {
			systray.AddSeparator()
			continue
		}
		item := systray.AddMenuItem(menuItem.Title, "")
		if menuItem.disabled {
			item.Disable()
		}
		if menuItem.checked {
			item.Check()
		}
		menuItem.item = item

		if menuItem.Callback != nil {
			go func(mi *MenuItem, clicked chan struct{}) {
				for {
					select {
					case <-clicked:
						mi.Callback()
					case <-t.quitCh:
						return
					}
				}
			}(menuItem, item.ClickedCh)
		}
	}
	close(t.readyCh)
	t.mu.Unlock()

	if t.onReady != nil {
		t.onReady()
	}
}

// Stop stops the tray
func (t *Tray) Stop() {
	systray.Quit()
}
