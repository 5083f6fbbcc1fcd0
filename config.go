package ghostfat

// UF2Sectors is the number of 512-byte sectors reserved for the UF2
// pseudo-file's address window (128 x 512 bytes = 64 KiB).
const UF2Sectors = 128

// BlockBytes is the fixed sector size the whole device operates on.
const BlockBytes = 512

// Config holds the immutable geometry and identity parameters of a
// synthesized FAT16 volume. Zero value is not valid; use DefaultConfig as a
// starting point.
type Config struct {
	// NumBlocks is the total number of 512-byte logical blocks in the volume.
	NumBlocks uint32
	// ReservedSectors is the number of sectors before FAT0, typically 1 (the
	// boot sector).
	ReservedSectors uint16
	// FATCopies is the number of identical FAT copies, typically 2.
	FATCopies uint8
	// SectorsPerFAT is the size in sectors of a single FAT copy.
	SectorsPerFAT uint16
	// RootDirEntries is the number of 32-byte slots in the root directory.
	RootDirEntries uint16
	// SectorsPerCluster is fixed at 1: one 512-byte sector per cluster.
	SectorsPerCluster uint8
	// VolumeLabel is the 11-byte space-padded volume label.
	VolumeLabel [11]byte
	// OEMName is the 8-byte OEM name field of the boot sector.
	OEMName [8]byte
	// Serial is the volume serial number.
	Serial uint32
}

// DefaultConfig returns a sensible starting Config: 2 FAT copies of 20
// sectors and a 64-entry root directory (4 sectors). The volume size is
// numBlocks as given; it is not checked or adjusted here.
func DefaultConfig(numBlocks uint32) Config {
	cfg := Config{
		NumBlocks:         numBlocks,
		ReservedSectors:   1,
		FATCopies:         2,
		SectorsPerFAT:     20,
		RootDirEntries:    64,
		SectorsPerCluster: 1,
		Serial:            0x00420042,
	}
	copy(cfg.VolumeLabel[:], padSpaces("GHOSTFAT", 11))
	copy(cfg.OEMName[:], padSpaces("GHOSTFAT", 8))
	return cfg
}

func padSpaces(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}

// startFAT0 returns the first sector of the first FAT copy.
func (c Config) startFAT0() uint32 { return uint32(c.ReservedSectors) }

// startFAT1 returns the first sector of the second FAT copy.
func (c Config) startFAT1() uint32 { return c.startFAT0() + uint32(c.SectorsPerFAT) }

// startRootDir returns the first sector of the root directory region.
func (c Config) startRootDir() uint32 {
	return c.startFAT0() + uint32(c.FATCopies)*uint32(c.SectorsPerFAT)
}

// rootDirSectors returns the number of sectors occupied by the root
// directory region.
func (c Config) rootDirSectors() uint32 {
	const direntSize = 32
	total := uint32(c.RootDirEntries) * direntSize
	sectors := total / BlockBytes
	if total%BlockBytes != 0 {
		sectors++
	}
	return sectors
}

// startClusters returns the first sector of the data-cluster region.
func (c Config) startClusters() uint32 {
	return c.startRootDir() + c.rootDirSectors()
}

// maxLBA returns the last valid logical block address.
func (c Config) maxLBA() uint32 {
	if c.NumBlocks == 0 {
		return 0
	}
	return c.NumBlocks - 1
}

// validate checks the region-ordering invariant:
// start_fat0 < start_rootdir < start_clusters <= num_blocks.
func (c Config) validate() error {
	if c.startFAT0() >= c.startRootDir() || c.startRootDir() >= c.startClusters() ||
		c.startClusters() > c.NumBlocks {
		return ErrBadGeometry
	}
	return nil
}
