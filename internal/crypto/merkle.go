package crypto

import (
	"math/big"
)

const (
	// MaxChunkSize is the largest data chunk committed to by a data root.
	MaxChunkSize = 256 * 1024
	// MinChunkSize is the smallest chunk allowed before the last one.
	MinChunkSize = 32 * 1024

	noteSize = 32
)

// Chunk is a slice of transaction data and its byte range.
type Chunk struct {
	DataHash     []byte
	MinByteRange int
	MaxByteRange int
}

type merkleNode struct {
	id           []byte
	maxByteRange int
}

// ChunkData splits data into chunks of at most MaxChunkSize bytes. When the
// remainder after a full chunk would be smaller than MinChunkSize, the two
// final chunks share the remaining bytes evenly.
func ChunkData(data []byte) []Chunk {
	var chunks []Chunk
	rest := data
	cursor := 0

	for len(rest) >= MaxChunkSize {
		size := MaxChunkSize
		next := len(rest) - MaxChunkSize
		if next > 0 && next < MinChunkSize {
			size = (len(rest) + 1) / 2
		}

		chunks = append(chunks, Chunk{
			DataHash:     Hash(rest[:size]),
			MinByteRange: cursor,
			MaxByteRange: cursor + size,
		})
		cursor += size
		rest = rest[size:]
	}

	return append(chunks, Chunk{
		DataHash:     Hash(rest),
		MinByteRange: cursor,
		MaxByteRange: cursor + len(rest),
	})
}

// DataRoot returns the merkle root over the chunks of data. Empty data has
// no root and yields nil.
func DataRoot(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	chunks := ChunkData(data)
	nodes := make([]merkleNode, len(chunks))
	for i, c := range chunks {
		nodes[i] = merkleNode{
			id:           hashConcat(Hash(c.DataHash), Hash(note(c.MaxByteRange))),
			maxByteRange: c.MaxByteRange,
		}
	}

	for len(nodes) > 1 {
		next := make([]merkleNode, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			if i+1 == len(nodes) {
				next = append(next, nodes[i])
				continue
			}
			left, right := nodes[i], nodes[i+1]
			next = append(next, merkleNode{
				id:           hashConcat(Hash(left.id), Hash(right.id), Hash(note(left.maxByteRange))),
				maxByteRange: right.maxByteRange,
			})
		}
		nodes = next
	}
	return nodes[0].id
}

func hashConcat(parts ...[]byte) []byte {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return Hash(buf)
}

// note encodes an offset as a 32-byte big-endian integer.
func note(n int) []byte {
	return big.NewInt(int64(n)).FillBytes(make([]byte, noteSize))
}
