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

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// codecName is registered with grpc's global encoding registry and
// selected per-call via grpc.CallContentSubtype, so this service can
// share a *grpc.Server and *grpc.ClientConn with protobuf-encoded
// services in the same process without either codec interfering with
// the other.
const codecName = "sst-admin-json"

// jsonCodec implements encoding.Codec (see google.golang.org/grpc/encoding)
// by marshaling with encoding/json instead of protobuf, since none of
// this service's messages are protobuf-generated types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return codecName }
