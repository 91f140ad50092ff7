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

import "fmt"

// ExtType is the scalar type of one extension slot in the internal row
// layout. Every derived column occupies exactly one slot of one ExtType.
type ExtType uint8

const (
	ExtBool ExtType = iota
	ExtInt32
	ExtInt64
	ExtUint32
	ExtUint64
	ExtFloat64
)

// Size returns the on-wire size, in bytes, of a slot of this type.
func (t ExtType) Size() int {
	switch t {
	case ExtBool:
		return 1
	case ExtInt32, ExtUint32:
		return 4
	case ExtInt64, ExtUint64, ExtFloat64:
		return 8
	default:
		panic(fmt.Sprintf("predicate: unknown ExtType %d", t))
	}
}

func (t ExtType) String() string {
	switch t {
	case ExtBool:
		return "bool"
	case ExtInt32:
		return "int32"
	case ExtInt64:
		return "int64"
	case ExtUint32:
		return "uint32"
	case ExtUint64:
		return "uint64"
	case ExtFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// extTypeOf infers the ExtType that stores a Go value of type V. Only the
// scalar types spec'd for extension slots are supported; anything else is a
// programmer error caught at Builder construction time (a panic, per the
// design notes' policy of panicking on programmer errors rather than
// returning a Result for something no caller can recover from).
func extTypeOf[V any]() ExtType {
	var zero V
	switch any(zero).(type) {
	case bool:
		return ExtBool
	case int32:
		return ExtInt32
	case int64:
		return ExtInt64
	case uint32:
		return ExtUint32
	case uint64:
		return ExtUint64
	case float64:
		return ExtFloat64
	default:
		panic(fmt.Sprintf("predicate: unsupported extension value type %T", zero))
	}
}

// Ordered constrains the value types Min can reduce over.
type Ordered interface {
	~int32 | ~int64 | ~uint32 | ~uint64 | ~float64
}

// RowSet is the read view a Descriptor's updater and getter operate over:
// the whole table as seen from one node, plus each row's already-computed
// extension slots.
type RowSet[R any] interface {
	NumRows() int
	User(i int) R
	Ext(i int, slot int) any
}
