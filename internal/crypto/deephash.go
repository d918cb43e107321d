package crypto

import (
	"crypto/sha512"
	"strconv"
)

// DeepHashChunk is a node in a deep-hash tree: a Blob or a List.
type DeepHashChunk interface {
	deepHashChunk()
}

// Blob is a deep-hash leaf.
type Blob []byte

// List is an ordered deep-hash branch.
type List []DeepHashChunk

func (Blob) deepHashChunk() {}
func (List) deepHashChunk() {}

// DeepHash computes the SHA-384 tagged hash used for transaction signature
// data. A blob hashes as H(H("blob"+len) || H(data)); a list folds
// acc = H(acc || DeepHash(item)) starting from H("list"+len). A nil chunk
// hashes as an empty blob.
func DeepHash(chunk DeepHashChunk) []byte {
	switch c := chunk.(type) {
	case List:
		acc := sha384([]byte("list" + strconv.Itoa(len(c))))
		for _, item := range c {
			acc = sha384(append(acc, DeepHash(item)...))
		}
		return acc
	case Blob:
		tagged := sha384([]byte("blob" + strconv.Itoa(len(c))))
		return sha384(append(tagged, sha384(c)...))
	default:
		return DeepHash(Blob(nil))
	}
}

func sha384(data []byte) []byte {
	sum := sha512.Sum384(data)
	return sum[:]
}
