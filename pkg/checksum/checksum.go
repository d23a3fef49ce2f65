package checksum

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the base64-encoded big-endian CRC-32C digest of content,
// matching the integrity tag format the blob store expects.
func CRC32C(content []byte) string {
	sum := crc32.Checksum(content, castagnoli)

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], sum)
	return base64.StdEncoding.EncodeToString(buf[:])
}
