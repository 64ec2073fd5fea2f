package naming

import "hash/crc32"

const maxSymbolLen = 255

// SymbolID returns the SkookumScript symbol id of s: the CRC-32 of its
// narrowed bytes. Runes outside Latin-1 narrow to '?', and input past
// maxSymbolLen bytes is ignored.
func SymbolID(s string) uint32 {
	buf := make([]byte, 0, min(len(s), maxSymbolLen))
	for _, r := range s {
		if len(buf) == maxSymbolLen {
			break
		}
		if r > 0xff {
			r = '?'
		}
		buf = append(buf, byte(r))
	}
	return crc32.ChecksumIEEE(buf)
}
