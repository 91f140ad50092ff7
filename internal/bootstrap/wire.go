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
	"encoding/binary"
	"fmt"
)

// addressRecordSize is the fixed size, in bytes, of one AddressRecord on
// the wire: uint64 + uint32 + uint32 + uint16 + 16 bytes of GID, matching
// spec §6's bootstrap wire format exactly.
const addressRecordSize = 8 + 4 + 4 + 2 + 16

// AddressRecord carries the RDMA connection parameters one peer needs to
// address this node's queue pair and registered memory. The verbs layer
// that actually fills these fields in is external to this package (see
// internal/transport); bootstrap only knows how to move the bytes.
type AddressRecord struct {
	Address uint64
	RKey    uint32
	QPNum   uint32
	LID     uint16
	GID     [16]byte
}

func encodeAddressRecord(r AddressRecord) []byte {
	b := make([]byte, addressRecordSize)
	binary.LittleEndian.PutUint64(b[0:8], r.Address)
	binary.LittleEndian.PutUint32(b[8:12], r.RKey)
	binary.LittleEndian.PutUint32(b[12:16], r.QPNum)
	binary.LittleEndian.PutUint16(b[16:18], r.LID)
	copy(b[18:34], r.GID[:])
	return b
}

func decodeAddressRecord(b []byte) (AddressRecord, error) {
	if len(b) != addressRecordSize {
		return AddressRecord{}, fmt.Errorf("bootstrap: address record must be %d bytes, got %d", addressRecordSize, len(b))
	}
	var r AddressRecord
	r.Address = binary.LittleEndian.Uint64(b[0:8])
	r.RKey = binary.LittleEndian.Uint32(b[8:12])
	r.QPNum = binary.LittleEndian.Uint32(b[12:16])
	r.LID = binary.LittleEndian.Uint16(b[16:18])
	copy(r.GID[:], b[18:34])
	return r, nil
}
