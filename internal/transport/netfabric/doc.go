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

// Package netfabric is a transport.Fabric for a real multi-host group
// that has no RDMA verbs hardware available: it uses internal/bootstrap
// to connect and exchange addresses, then keeps that same reliable byte
// stream open as the data path, framing PostRemoteWrite/PostRemoteRead as
// small messages instead of true zero-copy one-sided operations.
//
// This is a deliberate approximation, not a stand-in for a verbs binding.
// A real PostRemoteWrite involves no remote CPU at all; here, a receive
// loop goroutine on the peer applies incoming bytes to the local mirror
// buffer, and a PostRemoteRead is served by the same loop replying with a
// copy of the requested range. Both are the closest a plain TCP
// connection gets to the one-sided contract transport.Fabric declares:
// the peer never runs application code in response, only this package's
// own byte-copying dispatch loop. Deployments with real RDMA hardware
// should implement transport.Fabric directly against libibverbs instead;
// this package exists so a group can run over ordinary networking when
// that hardware is not present, and so internal/bootstrap is exercised
// by something other than its own tests.
package netfabric
