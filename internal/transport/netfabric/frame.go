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

package netfabric

import (
	"encoding/binary"
	"fmt"
	"io"
)

type opcode uint8

const (
	opWrite opcode = iota
	opReadRequest
	opReadReply
)

// header is [op:1][reqID:8][offset:4][size:4], followed by size bytes of
// payload for opWrite and opReadReply. opReadRequest carries no payload,
// only the range being requested.
const headerSize = 1 + 8 + 4 + 4

type frame struct {
	op     opcode
	reqID  uint64
	offset int
	size   int
	data   []byte
}

func writeFrame(w io.Writer, f frame) error {
	buf := make([]byte, headerSize+len(f.data))
	buf[0] = byte(f.op)
	binary.LittleEndian.PutUint64(buf[1:9], f.reqID)
	binary.LittleEndian.PutUint32(buf[9:13], uint32(f.offset))
	binary.LittleEndian.PutUint32(buf[13:17], uint32(f.size))
	copy(buf[headerSize:], f.data)
	_, err := w.Write(buf)
	return err
}

func readFrame(r io.Reader) (frame, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return frame{}, err
	}
	f := frame{
		op:     opcode(hdr[0]),
		reqID:  binary.LittleEndian.Uint64(hdr[1:9]),
		offset: int(binary.LittleEndian.Uint32(hdr[9:13])),
		size:   int(binary.LittleEndian.Uint32(hdr[13:17])),
	}
	if f.op == opWrite || f.op == opReadReply {
		f.data = make([]byte, f.size)
		if _, err := io.ReadFull(r, f.data); err != nil {
			return frame{}, err
		}
	}
	if f.op > opReadReply {
		return frame{}, fmt.Errorf("netfabric: unknown opcode %d", f.op)
	}
	return f, nil
}
