/*
 *
 * Copyright 2025 The SST Authors.
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
 *
 */

package sst

import "sort"

// observeLoop is the single background worker from §4.7: it never
// blocks and never sleeps between passes, spinning as fast as the
// updaters and predicate walk allow.
func (t *Table[R, N]) observeLoop() {
	defer t.wg.Done()
	rs := tableRowSet[R, N]{t}
	me := t.LocalIndex()

	for {
		select {
		case <-t.stopCh:
			return
		default:
		}

		for slot, d := range t.chain.Descriptors {
			v := d.Updater(rs, me)
			t.rows[me].setExt(t.layout, slot, v)
		}

		t.runPredicatePass()
	}
}

// runPredicatePass walks a snapshot of the registered predicates once:
// every OneTime entry, then every Recurrent entry, then every Transition
// entry, in registration order within each kind. The snapshot is taken
// under the registry's lock but evaluation and trigger firing run outside
// it, so a trigger registering a new predicate never re-enters the lock
// it might already be inside.
func (t *Table[R, N]) runPredicatePass() {
	entries := t.predicates.snapshot()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].kind < entries[j].kind })
	for _, e := range entries {
		switch e.kind {
		case OneTime:
			if e.pred(t) {
				t.fireTriggers(e)
				t.predicates.remove(e)
			}
		case Recurrent:
			if e.evolver != nil {
				e.pred = e.evolver(t, e.generation)
				e.generation++
			}
			if e.pred(t) {
				t.fireTriggers(e)
			}
		case Transition:
			now := e.pred(t)
			if now && !e.lastState {
				t.fireTriggers(e)
			}
			e.lastState = now
		}
	}
}

// fireTriggers runs every trigger of a firing predicate, isolating each
// call so a panicking trigger cannot bring down the observer: per §7 a
// trigger's failure ends its own turn, not the pass, and the predicate
// itself is retained or removed strictly by the OneTime/Recurrent/
// Transition semantics above, which already ran before any trigger did.
func (t *Table[R, N]) fireTriggers(e *predicateEntry[R, N]) {
	for _, trig := range e.triggers {
		t.safeTrigger(trig)
	}
}

func (t *Table[R, N]) safeTrigger(trig Trigger[R, N]) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Errorf("predicate trigger panicked: %v", r)
		}
	}()
	trig(t)
}
