package tracelog

import "hash/crc32"

// castagnoliTable is the CRC32C table, the same checksum polynomial the
// teacher's WAL used (faster on modern hardware than IEEE CRC32).
var castagnoliTable = crc32.MakeTable(crc32.Castagnoli)

// CalculateCRC32 computes the checksum of data.
func CalculateCRC32(data []byte) uint32 {
	return crc32.Checksum(data, castagnoliTable)
}

// ValidateCRC32 reports whether data matches the expected checksum.
func ValidateCRC32(data []byte, expected uint32) bool {
	return CalculateCRC32(data) == expected
}
