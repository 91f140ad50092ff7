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

// Package predicate implements the compile-time predicate combinator DSL
// used to derive extension columns of a shared state table row.
//
// A Builder accumulates a chain of Descriptors, tail-to-head, oldest first.
// Each Descriptor owns exactly one extension slot in the internal row and
// carries an updater (recomputes the slot from the whole table) and a
// getter (reads the slot back out of a row). Combinators such as E and Min
// wrap an existing builder in a new aggregate descriptor; Named binds one
// of the enumeration's symbols to the most recently added descriptor so it
// can be looked up by name at runtime.
//
// The chain is resolved into an opaque, table-ready form by Finalize, which
// enforces the invariants a Table relies on: every slot must end up with a
// non-negative tag, and the set of tags across every chain passed to one
// table must be dense and start at zero.
package predicate
