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

// Name constrains the enumeration a table's derived columns are named
// from. Callers declare their own `type ColumnName int` with `iota`
// constants; every Named call for one table must share that one type.
type Name interface {
	~int
}

// Named attaches a symbol from the caller's naming enumeration to the most
// recently added extension in pb's chain.
//
// If no descriptor in the chain has a tag yet (pb has never been named
// before), every descriptor in the chain, not just the head, is given
// tag = int(n): naming a freshly built, wholly-anonymous chain claims the
// whole chain for that one name, which is what lets Finalize accept it
// (every registered extension needs tag >= 0; see change_uniqueness in
// the original combinator library, which this rewrites as a plain slice
// rewrite instead of a type-level rename).
//
// If some ancestor already carries a tag (pb was built by wrapping an
// already-Named builder in more combinators), only the head gets the new
// tag; the ancestor keeps the tag (and the runtime name lookup) it was
// given earlier, so both names stay independently callable.
func Named[R any, V any, N Name](pb *Builder[R, V], n N) *Builder[R, V] {
	tag := int(n)
	chain := pb.chainCopy()
	if len(chain) == 0 {
		panic("predicate: Named called on an empty builder")
	}
	headIdx := len(chain) - 1

	anyNamed := false
	for i := 0; i < headIdx; i++ {
		if chain[i].Tag >= 0 {
			anyNamed = true
			break
		}
	}

	if !anyNamed {
		for i := range chain {
			chain[i].Tag = tag
		}
	} else {
		chain[headIdx].Tag = tag
	}
	chain[headIdx].NamedHead = true

	return &Builder[R, V]{chain: chain, curr: pb.curr}
}
