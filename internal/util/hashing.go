package util

import (
	"crypto/sha256"
	"strconv"
)

// HashVector returns a digest of the coordinates. Vectors hash equal only if they
// have the same length and the same values.
func HashVector(vec []float64) [32]byte {
	buffer := GetBytesBuffer()
	defer PutBytesBuffer(buffer)
	buffer.WriteString(strconv.Itoa(len(vec)))
	for i := range vec {
		buffer.WriteByte(',')
		buffer.WriteString(strconv.FormatFloat(vec[i], 'g', -1, 64))
	}
	return sha256.Sum256(buffer.Bytes())
}

// HashVectors hashes several vectors as one sequence.
func HashVectors(vecs ...[]float64) [32]byte {
	buffer := GetBytesBuffer()
	defer PutBytesBuffer(buffer)
	for _, vec := range vecs {
		sum := HashVector(vec)
		buffer.Write(sum[:])
	}
	return sha256.Sum256(buffer.Bytes())
}
