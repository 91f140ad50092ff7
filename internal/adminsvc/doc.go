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

// Package adminsvc is a small, hand-written gRPC service exposing a
// table's layout and a point-in-time snapshot for the sst-inspect
// diagnostic tool. It is deliberately not on the replication path: a
// table's Put/PutRange/Get never touch it, because the one-sided
// transport this project models must have zero remote CPU involvement,
// which an RPC call is the opposite of. This package hand-rolls its
// grpc.ServiceDesc rather than generating one from a .proto file, using a
// JSON codec instead of protobuf, since the payloads here are small,
// operator-facing, and change shape with whatever row/extension types a
// caller's table happens to have.
package adminsvc
