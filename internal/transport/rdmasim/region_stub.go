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

//go:build !unix

package rdmasim

// mmapAnon falls back to a plain heap allocation on platforms without an
// mmap syscall available through x/sys/unix. Completion signaling is
// chosen separately: every platform other than Linux uses the sleep-and-poll
// fallback in futex_stub.go.
func mmapAnon(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func munmap(b []byte) error {
	return nil
}
