package tray

import (
	"encoding/binary"
	"testing"
)

func TestMenuStateBeforeRun(t *testing.T) {
	tr := New("Kabin", "recorder")
	rec := tr.AddMenuItem("Record", func() {})
	tr.AddSeparator()
	stop := tr.AddMenuItem("Stop Recording", nil)

	if rec != 0 || stop != 2 {
		t.Fatalf("Expected ids 0 and 2, got %d and %d", rec, stop)
	}

	tr.SetItemEnabled(stop, false)
	tr.SetItemChecked(rec, true)
	tr.SetItemEnabled(1, false) // separator, ignored
	tr.SetItemEnabled(99, false)

	if !tr.items[stop].disabled {
		t.Error("Expected Stop Recording to be disabled")
	}
	if !tr.items[rec].checked || tr.items[rec].Title != "Record" {
		t.Errorf("Unexpected item state: %+v", tr.items[rec])
	}
}

func TestIconHeader(t *testing.T) {
	icon := getIcon()
	if binary.LittleEndian.Uint16(icon[2:4]) != 1 {
		t.Error("Expected ICO type 1")
	}
	size := binary.LittleEndian.Uint32(icon[14:18])
	offset := binary.LittleEndian.Uint32(icon[18:22])
	if int(offset+size) != len(icon) {
		t.Errorf("Directory entry covers %d bytes, icon has %d", offset+size, len(icon))
	}
}
