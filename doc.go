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

// Package sst implements a Shared State Table: a fixed-size group of
// nodes, each owning exactly one row of a table that every node mirrors
// in full. A node mutates only its own row and propagates the change to
// every peer with one-sided RDMA-style writes (package
// internal/transport and its loopback simulator,
// internal/transport/rdmasim); an alternative mode has every node
// continuously pull its peers' rows instead. A background observer
// recomputes derived columns declared through the predicate package and
// fires user-registered triggers when boolean/aggregate conditions over
// the mirrored table hold.
//
// A Table is constructed with New, given the group's members, the
// caller's own rank, the derived columns built with the predicate
// package, and any Options overriding the defaults (replication mode,
// transport, logger). Once constructed, the caller drives the table's
// user row through Get and Put, and observes derived state through
// CallNamedPredicate, GetSnapshot, and the predicate registries exposed
// by InsertPredicate.
package sst
