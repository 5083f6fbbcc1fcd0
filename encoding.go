package ghostfat

import "encoding/binary"

// byteOrder is the wire byte order for every on-disk structure GhostFAT
// synthesizes. FAT is defined little-endian throughout.
var byteOrder = binary.LittleEndian
