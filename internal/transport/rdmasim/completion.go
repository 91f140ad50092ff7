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

package rdmasim

import "sync/atomic"

// completionQueue models the completion side of one queue pair: a
// monotonic count of finished operations, signaled without the polling
// side's CPU doing any of the actual data movement, and consumed one at a
// time by PollCompletion.
type completionQueue struct {
	completed uint32
	consumed  uint32
}

// complete marks one operation done. It runs asynchronously, standing in
// for the "NIC", so the poster's goroutine returns from
// PostRemoteWrite/Read immediately, matching the real transport's
// fire-and-poll-later shape.
func (q *completionQueue) complete() {
	go func() {
		atomic.AddUint32(&q.completed, 1)
		futexWake(&q.completed, 1)
	}()
}

// wait blocks until at least one completion posted before this call has
// not yet been consumed, then consumes it.
func (q *completionQueue) wait() error {
	for {
		c := atomic.LoadUint32(&q.completed)
		cons := atomic.LoadUint32(&q.consumed)
		if c != cons {
			if atomic.CompareAndSwapUint32(&q.consumed, cons, cons+1) {
				return nil
			}
			continue
		}
		if err := futexWait(&q.completed, c); err != nil {
			return err
		}
	}
}
