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

// Package watch reports changes to a file, coalescing bursts of file
// system events into a single notification.
package watch

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used when none is given.
const DefaultDelay = 250 * time.Millisecond

// Debouncer coalesces rapid triggers.  After the last call to Trigger, once
// the delay has passed without further triggers, a value is sent on the
// channel returned by C.
type Debouncer struct {
	delay time.Duration
	c     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a new Debouncer.  If delay is 0, DefaultDelay is
// used.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		delay: delay,
		c:     make(chan struct{}, 1),
	}
}

// C returns the channel on which the debounced notifications arrive.
// Notifications which are not received in time are merged.
func (d *Debouncer) C() <-chan struct{} {
	return d.c
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		// a timer which was replaced after it fired must not notify
		if !current {
			return
		}
		select {
		case d.c <- struct{}{}:
		default:
		}
	})
}

// Stop cancels a pending notification.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
