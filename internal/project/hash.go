package project

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 value, the same shape as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps in the given order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Digest фиксирует лимиты, влияющие на результат лексера и парсера;
// ключ кэша токенов строится из хеша файла и этого значения.
func (l Limits) Digest() Digest {
	var buf [8 * 5]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(l.MaxNestingDepth))
	binary.LittleEndian.PutUint64(buf[8:], l.MaxSourceSize)
	binary.LittleEndian.PutUint64(buf[16:], uint64(l.MaxExprDepth))
	binary.LittleEndian.PutUint64(buf[24:], uint64(l.MaxBlockDepth))
	binary.LittleEndian.PutUint64(buf[32:], uint64(l.MaxDiagnostics))
	return sha256.Sum256(buf[:])
}
