// Copyright 2025 The Quern Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package expr

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// fixed keys: node hashes only need to be stable
// within a process, not across processes
const (
	k0, k1 = 0, 1
)

func hashString(s string) uint64 {
	return siphash.Hash(k0, k1, []byte(s))
}

// hashCall combines the operator name with the hashes
// of the (normalized) operands. Operand order matters
// here; commutativity is already accounted for by the
// caller passing the normalized order.
func hashCall(name string, args []Node) uint64 {
	buf := make([]byte, 0, len(name)+8*len(args))
	buf = append(buf, name...)
	var tmp [8]byte
	for i := range args {
		binary.LittleEndian.PutUint64(tmp[:], args[i].Hash())
		buf = append(buf, tmp[:]...)
	}
	return siphash.Hash(k0, k1, buf)
}
