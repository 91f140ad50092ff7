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

package adminsvc

import "google.golang.org/grpc"

// NewServer builds a *grpc.Server with provider registered as the
// Introspection service, ready for a caller to attach a net.Listener
// with Serve. The JSON codec registered in codec.go is selected
// per-call by its content-subtype, so this server can share a process
// with protobuf services without conflict.
func NewServer(provider Provider) *grpc.Server {
	srv := grpc.NewServer()
	srv.RegisterService(&ServiceDesc, provider)
	return srv
}
