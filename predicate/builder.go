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

package predicate

// Descriptor describes one extension slot of the internal row: its scalar
// type, its disambiguating tag (-1 until Named assigns one),
// its optional public name, its updater and its getter.
//
// Slot addressing inside Updater/Getter is chain-local: descriptor i's own
// slot is always local index i, the position it occupies in its builder's
// chain. Finalize is responsible for translating chain-local indices into
// the table's global extension layout, so a Descriptor never needs to know
// where its chain sits among the table's other derived columns.
type Descriptor[R any] struct {
	Type ExtType
	Tag  int

	// NamedHead is true only for the descriptor a Named call directly
	// targeted (as opposed to an ancestor that merely inherited the same
	// tag because its whole chain was claimed by one name at once). Only
	// NamedHead descriptors are addressable by call_named_predicate.
	NamedHead bool

	// Updater recomputes this descriptor's own slot (chain-local index
	// len(chain)-1 at the point this Descriptor was appended) for row
	// `me`, given a view of the whole table with every earlier
	// descriptor in the chain already refreshed for this pass.
	Updater func(rows RowSet[R], me int) any

	// Getter reads this descriptor's slot back out of one row.
	Getter func(rows RowSet[R], row int) any
}

// Builder accumulates a chain of Descriptors, tail-to-head (oldest first),
// and carries the "current value expression": a function of a row index
// within a RowSet that yields the value the chain currently computes for
// that row (always: read back the head descriptor's own slot). Every
// combinator returns a fresh Builder; the receiver is never mutated, so a
// builder can be reused as the base of more than one derived column.
type Builder[R any, V any] struct {
	chain []Descriptor[R]
	curr  func(rows RowSet[R], row int) V
}

func (b *Builder[R, V]) chainCopy() []Descriptor[R] {
	out := make([]Descriptor[R], len(b.chain))
	copy(out, b.chain)
	return out
}

// AsRowPred lifts a pure function of the user row into a Builder with one
// nameless extension of the result type: the slot's updater re-evaluates f
// against the local user row every pass, and its getter reads the slot
// back.
func AsRowPred[R any, V any](f func(R) V) *Builder[R, V] {
	const localSlot = 0
	d := Descriptor[R]{
		Type: extTypeOf[V](),
		Tag:  -1,
		Updater: func(rows RowSet[R], me int) any {
			return f(rows.User(me))
		},
		Getter: func(rows RowSet[R], row int) any {
			return rows.Ext(row, localSlot)
		},
	}
	return &Builder[R, V]{
		chain: []Descriptor[R]{d},
		curr: func(rows RowSet[R], row int) V {
			v, _ := rows.Ext(row, localSlot).(V)
			return v
		},
	}
}
