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
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// File calls onChange whenever the named file is written, created, renamed
// or removed, at most once per quiet period of the given delay.
//
// The directory containing the file is watched, so that editors which
// replace the file are handled.  onChange is called on the goroutine which
// called File.  File returns when ctx is cancelled, or when the watcher
// reports an error.
func File(ctx context.Context, path string, delay time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	deb := NewDebouncer(delay)
	defer deb.Stop()

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == path && ev.Op&relevant != 0 {
				deb.Trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-deb.C():
			onChange()
		}
	}
}
