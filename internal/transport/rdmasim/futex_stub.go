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

//go:build !linux

package rdmasim

import "time"

// futexWait falls back to a short bounded sleep on platforms without a
// futex syscall; the completion queue re-checks its condition in a loop
// regardless, so this only affects how promptly a waiter notices a
// completion, not correctness.
func futexWait(addr *uint32, val uint32) error {
	time.Sleep(200 * time.Microsecond)
	return nil
}

func futexWake(addr *uint32, n int) error {
	return nil
}
