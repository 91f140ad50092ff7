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

package bootstrap

import (
	"fmt"
	"sort"
)

// SyncAll blocks until every channel in channels has completed a one-byte
// round trip, in descending rank order. It is the side-channel barrier
// backing the table's SyncWithMembers: it returns once every named peer
// has written its own sync byte back, that is, once each peer has reached
// its matching call (spec §4.2, §4.8). It does not inspect any completion
// queue.
func SyncAll(channels map[int]*Channel) error {
	ranks := make([]int, 0, len(channels))
	for r := range channels {
		ranks = append(ranks, r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	for _, r := range ranks {
		if err := channels[r].Sync(); err != nil {
			return fmt.Errorf("bootstrap: sync with rank %d: %w", r, err)
		}
	}
	return nil
}

// SyncWith blocks until the channel for a single peer rank completes its
// one-byte round trip. It is used when a table only needs a subset of the
// group to agree on a point in time, rather than every member.
func SyncWith(channels map[int]*Channel, rank int) error {
	ch, ok := channels[rank]
	if !ok {
		return fmt.Errorf("bootstrap: no channel for rank %d", rank)
	}
	if err := ch.Sync(); err != nil {
		return fmt.Errorf("bootstrap: sync with rank %d: %w", rank, err)
	}
	return nil
}
