// Package ghostfat synthesizes a FAT16 volume on demand from a fixed list
// of in-memory byte buffers. It presents the synthesized boot sector, FAT,
// root directory and data clusters to a block-addressed host (typically a
// USB Mass Storage responder) without ever persisting a filesystem image:
// every sector is computed from its LBA when read, and writes are routed
// back to the owning virtual file's backing buffer.
package ghostfat
