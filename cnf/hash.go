package cnf

import (
	"crypto/sha256"
	"encoding/binary"
)

// foldSHA256 digests a sorted slice of per-clause hashes plus the Set's
// tri-valued state into a stable 32-byte fingerprint.
func foldSHA256(sortedClauseHashes []uint64, v Value) [32]byte {
	h := sha256.New()
	var buf [8]byte
	for _, ch := range sortedClauseHashes {
		binary.LittleEndian.PutUint64(buf[:], ch)
		h.Write(buf[:])
	}
	h.Write([]byte{byte(v)})
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
