/*
 * Copyright 2019 The CovenantSQL Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package timer provides a stage stop watch whose results feed log fields.
package timer

import (
	"sync"
	"time"

	"github.com/CovenantSQL/shathree/utils/log"
)

// TotalKey is the name of the overall duration in ToMap.
const TotalKey = "total"

// Timer defines a stop watch timer for performance analysis.
type Timer struct {
	sync.Mutex
	start  time.Time
	names  []string
	pivots []time.Time
}

// NewTimer returns a new stop watch timer instance.
func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
	}
}

// Add records the end of stage name.
func (t *Timer) Add(name string) {
	t.Lock()
	defer t.Unlock()

	t.names = append(t.names, name)
	t.pivots = append(t.pivots, time.Now())
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ToLogFields returns stage durations as log fields.
func (t *Timer) ToLogFields() log.Fields {
	m := t.ToMap()
	f := make(log.Fields, len(m))
	for k, v := range m {
		f[k] = v
	}
	return f
}

// ToMap returns each stage duration plus TotalKey up to the last stage.
// A repeated stage name accumulates.
func (t *Timer) ToMap() map[string]time.Duration {
	t.Lock()
	defer t.Unlock()

	lp := len(t.pivots)
	m := make(map[string]time.Duration, 1+lp)
	if lp == 0 {
		return m
	}

	last := t.start
	for i, p := range t.pivots {
		m[t.names[i]] += p.Sub(last)
		last = p
	}
	m[TotalKey] = last.Sub(t.start)
	return m
}
