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

// E is the universal-existential combinator: despite the name (kept for
// source compatibility with the original combinator library), it produces
// a builder whose new bool extension holds the AND of pb's current value
// expression over every row of the table: true iff pb's predicate holds
// for every row.
func E[R any](pb *Builder[R, bool]) *Builder[R, bool] {
	localSlot := len(pb.chain)
	prevCurr := pb.curr
	d := Descriptor[R]{
		Type: ExtBool,
		Tag:  -1,
		Updater: func(rows RowSet[R], me int) any {
			result := true
			for i := 0; i < rows.NumRows(); i++ {
				if !prevCurr(rows, i) {
					result = false
					break
				}
			}
			return result
		},
		Getter: func(rows RowSet[R], row int) any {
			return rows.Ext(row, localSlot)
		},
	}
	chain := append(pb.chainCopy(), d)
	return &Builder[R, bool]{
		chain: chain,
		curr: func(rows RowSet[R], row int) bool {
			v, _ := rows.Ext(row, localSlot).(bool)
			return v
		},
	}
}

// Min adds an extension holding the minimum of pb's current value
// expression over every row of the table. Ties are broken by keeping the
// first row encountered (a stable minimum, scanning rows in ascending
// rank order).
func Min[R any, V Ordered](pb *Builder[R, V]) *Builder[R, V] {
	localSlot := len(pb.chain)
	prevCurr := pb.curr
	d := Descriptor[R]{
		Type: extTypeOf[V](),
		Tag:  -1,
		Updater: func(rows RowSet[R], me int) any {
			n := rows.NumRows()
			var best V
			for i := 0; i < n; i++ {
				v := prevCurr(rows, i)
				if i == 0 || v < best {
					best = v
				}
			}
			return best
		},
		Getter: func(rows RowSet[R], row int) any {
			return rows.Ext(row, localSlot)
		},
	}
	chain := append(pb.chainCopy(), d)
	return &Builder[R, V]{
		chain: chain,
		curr: func(rows RowSet[R], row int) V {
			v, _ := rows.Ext(row, localSlot).(V)
			return v
		},
	}
}
