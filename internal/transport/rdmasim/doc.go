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

// Package rdmasim provides an in-process, single-host simulation of a
// one-sided RDMA-style transport: registered memory regions and
// completion queues, with no counterpart process CPU involvement on the
// data path. It exists so the table and predicate engine can be
// exercised end to end without a real verbs binding, and so unit tests
// can construct an N-node group inside one Go process.
//
// A real deployment implements internal/transport.Fabric against actual
// verbs (queue pairs, registered memory, hardware completion queues)
// instead of this package; the table code depends only on the Fabric
// contract.
package rdmasim
