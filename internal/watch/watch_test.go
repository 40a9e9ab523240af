// seehuhn.de/go/deepzoom - navigation for multi-resolution tiled images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	for range 5 {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-d.C():
	case <-time.After(2 * time.Second):
		t.Fatal("no notification")
	}
	select {
	case <-d.C():
		t.Error("burst produced a second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	d.Trigger()
	d.Stop()
	select {
	case <-d.C():
		t.Error("notification after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.dzc")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 20*time.Millisecond, func() {
			changed <- struct{}{}
		})
	}()

	// writes to other files in the directory are ignored
	deadline := time.After(4 * time.Second)
	for {
		if err := os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("two"), 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case <-changed:
			cancel()
			if err := <-done; err != nil {
				t.Fatal(err)
			}
			return
		case <-time.After(200 * time.Millisecond):
			// the watcher may not have been ready yet
		case <-deadline:
			t.Fatal("change not reported")
		}
	}
}
