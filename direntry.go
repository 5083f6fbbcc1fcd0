package ghostfat

import (
	"github.com/go-restruct/restruct"
	"github.com/pkg/errors"
)

// Directory entry attribute bits.
const (
	AttrReadOnly  uint8 = 0x01
	AttrHidden    uint8 = 0x02
	AttrSystem    uint8 = 0x04
	AttrVolumeID  uint8 = 0x08
	AttrDirectory uint8 = 0x10
	AttrArchive   uint8 = 0x20

	attrVolumeLabel = AttrVolumeID | AttrArchive
)

const direntSize = 32

// directoryEntry is the packed 32-byte 8.3 directory record.
type directoryEntry struct {
	Name         [11]byte
	Attrs        uint8
	Reserved     [10]byte
	Time         uint16
	Date         uint16
	StartCluster uint16
	Size         uint32
}

// volumeLabelEntry builds the slot-0 pseudo-entry carrying the volume label.
func volumeLabelEntry(cfg Config) directoryEntry {
	var e directoryEntry
	copy(e.Name[:], cfg.VolumeLabel[:])
	e.Attrs = attrVolumeLabel
	return e
}

// fileEntry builds the directory record for a registered file occupying
// cluster startCluster.
func fileEntry(f *File, startCluster uint16) directoryEntry {
	var e directoryEntry
	copy(e.Name[:], f.name8_3[:])
	e.Attrs = f.attrs
	e.StartCluster = startCluster
	e.Size = uint32(f.Len())
	return e
}

func (e directoryEntry) writeTo(buf []byte) error {
	packed, err := restruct.Pack(byteOrder, &e)
	if err != nil {
		return errors.Wrap(err, "ghostfat: pack directory entry")
	}
	if len(packed) != direntSize || len(buf) < direntSize {
		return errors.New("ghostfat: directory entry size mismatch")
	}
	copy(buf[:direntSize], packed)
	return nil
}
