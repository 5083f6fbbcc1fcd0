package ghostfat

import (
	"github.com/go-restruct/restruct"
	"github.com/pkg/errors"
)

// fatBootBlock is the 512-byte BPB/EBPB image for a FAT16 volume. Field
// order and widths mirror the classic FAT16 boot sector; restruct packs it
// without hand-written offset math.
type fatBootBlock struct {
	JumpInstruction    [3]byte
	OEMName            [8]byte
	BytesPerSector     uint16
	SectorsPerCluster  uint8
	ReservedSectors    uint16
	NumFATs            uint8
	RootDirEntries     uint16
	TotalSectors16     uint16
	MediaDescriptor    uint8
	SectorsPerFAT      uint16
	SectorsPerTrack    uint16
	Heads              uint16
	HiddenSectors      uint32
	TotalSectors32     uint32
	DriveNumber        uint8
	Reserved1          uint8
	ExtBootSignature   uint8
	VolumeSerial       uint32
	VolumeLabel        [11]byte
	FilesystemType     [8]byte
	BootCode           [448]byte
	Signature          uint16
}

const (
	bootSignature  = 0xAA55
	mediaDescFixed = 0xF8
	extBootSigVal  = 0x29
	driveNumberHDD = 0x80
)

// newBootBlock builds the BPB for cfg: jump, OEM name, BPB/EBPB fields, and
// the 0x55 0xAA signature at bytes 510/511.
func newBootBlock(cfg Config) fatBootBlock {
	bb := fatBootBlock{
		JumpInstruction:   [3]byte{0xEB, 0x3C, 0x90},
		BytesPerSector:    BlockBytes,
		SectorsPerCluster: cfg.SectorsPerCluster,
		ReservedSectors:   cfg.ReservedSectors,
		NumFATs:           cfg.FATCopies,
		RootDirEntries:    cfg.RootDirEntries,
		MediaDescriptor:   mediaDescFixed,
		SectorsPerFAT:     cfg.SectorsPerFAT,
		SectorsPerTrack:   1,
		Heads:             1,
		DriveNumber:       driveNumberHDD,
		ExtBootSignature:  extBootSigVal,
		VolumeSerial:      cfg.Serial,
		Signature:         bootSignature,
	}
	copy(bb.OEMName[:], cfg.OEMName[:])
	copy(bb.VolumeLabel[:], cfg.VolumeLabel[:])
	copy(bb.FilesystemType[:], "FAT16   ")

	if cfg.NumBlocks <= 0xFFFF {
		bb.TotalSectors16 = uint16(cfg.NumBlocks)
	} else {
		bb.TotalSectors32 = cfg.NumBlocks
	}
	return bb
}

// writeTo serializes the boot block into a 512-byte buffer: the struct
// occupies bytes [0:sizeof], and bytes 510/511 carry the 0x55 0xAA signature
// regardless of restruct's own packing of the trailing Signature field
// (kept in sync defensively).
func (bb fatBootBlock) writeTo(buf []byte) error {
	packed, err := restruct.Pack(byteOrder, &bb)
	if err != nil {
		return errors.Wrap(err, "ghostfat: pack boot block")
	}
	copy(buf, packed)
	buf[510] = 0x55
	buf[511] = 0xAA
	return nil
}
