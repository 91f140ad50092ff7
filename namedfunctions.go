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

import "github.com/dslab-sst/sst/predicate"

// Enum is the constraint a table's name enumeration must satisfy: the
// caller declares its own `type ColumnName int` with iota constants and
// uses it both for derived-column names (predicate.Named) and for the
// standalone named-function registry below. It is a plain alias of
// predicate.Name so a single enumeration type serves both call sites
// without an import of the predicate package at every call.
type Enum = predicate.Name

// namedFunction is a getter registered directly against a name, bypassing
// the derived-column chain entirely. It is the "named_functions: ordered
// list of (name, getter)" construction parameter from §6, distinct from a
// derived column's own optional name. Useful for exposing a plain field
// read (no updater, no extension slot) under the same lookup surface as
// CallNamedPredicate.
type namedFunction[R any] func(R) any

// namedFunctionRegistry maps an enum tag to a getter. It is fixed after
// construction, per §3's "the registry is fixed after construction".
type namedFunctionRegistry[R any, N Enum] struct {
	funcs map[N]namedFunction[R]
}

func newNamedFunctionRegistry[R any, N Enum]() *namedFunctionRegistry[R, N] {
	return &namedFunctionRegistry[R, N]{funcs: make(map[N]namedFunction[R])}
}

func (r *namedFunctionRegistry[R, N]) register(name N, f namedFunction[R]) error {
	if _, dup := r.funcs[name]; dup {
		return configErrorf("named function %v registered twice", name)
	}
	r.funcs[name] = f
	return nil
}

func (r *namedFunctionRegistry[R, N]) lookup(name N) (namedFunction[R], bool) {
	f, ok := r.funcs[name]
	return f, ok
}
