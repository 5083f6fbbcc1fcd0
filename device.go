package ghostfat

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Device is the block-level FAT16 synthesizer. It exposes a block-device
// contract (ReadBlock/WriteBlock/MaxLBA) over a fixed, ordered Registry of
// virtual files, materializing every sector on demand with no persistent
// index.
type Device struct {
	reg *Registry
	log *slog.Logger
}

// NewDevice validates files and cfg via NewRegistry and returns a Device
// ready to serve ReadBlock/WriteBlock.
func NewDevice(files []File, cfg Config) (*Device, error) {
	reg, err := NewRegistry(files, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "ghostfat: new device")
	}
	return &Device{reg: reg}, nil
}

// SetLogger attaches a structured logger used for the warn/error-level
// messages logged on unhandled writes. A Device with no logger set logs
// through slog.Default().
func (d *Device) SetLogger(log *slog.Logger) { d.log = log }

// MaxLBA returns Config.NumBlocks - 1.
func (d *Device) MaxLBA() uint32 { return d.reg.cfg.maxLBA() }

type region int

const (
	regionBoot region = iota
	regionFAT
	regionRootDir
	regionData
)

// classify buckets lba into the boot sector, a FAT copy, the root
// directory, or the data-cluster region.
func (d *Device) classify(lba uint32) region {
	cfg := d.reg.cfg
	switch {
	case lba == 0:
		return regionBoot
	case lba < cfg.startRootDir():
		return regionFAT
	case lba < cfg.startClusters():
		return regionRootDir
	default:
		return regionData
	}
}

// ReadBlock fills buf (which must be BlockBytes long) with the contents of
// lba. The buffer is always zeroed first; reads never mutate device state.
// An out-of-range lba is logged and leaves buf zeroed; it is not an error.
func (d *Device) ReadBlock(lba uint32, buf []byte) error {
	if len(buf) != BlockBytes {
		return errors.Errorf("ghostfat: buffer must be %d bytes, got %d", BlockBytes, len(buf))
	}
	for i := range buf {
		buf[i] = 0
	}
	if lba > d.MaxLBA() {
		d.warn("read lba out of range ignored", slog.Uint64("lba", uint64(lba)), slog.Uint64("max_lba", uint64(d.MaxLBA())))
		return nil
	}

	cfg := d.reg.cfg
	switch d.classify(lba) {
	case regionBoot:
		return d.reg.boot.writeTo(buf)

	case regionFAT:
		sectionIndex := lba - cfg.startFAT0()
		if sectionIndex >= uint32(cfg.SectorsPerFAT) {
			sectionIndex -= uint32(cfg.SectorsPerFAT)
		}
		d.synthesizeFATSector(sectionIndex, buf)
		return nil

	case regionRootDir:
		sectionIndex := lba - cfg.startRootDir()
		if sectionIndex == 0 {
			d.synthesizeRootDirSector(buf)
		}
		return nil

	default: // regionData
		sectionIndex := lba - cfg.startClusters()
		d.readDataSector(sectionIndex, buf)
		return nil
	}
}

// synthesizeRootDirSector fills slot 0 with the volume-label pseudo-entry
// and slot i+1 with file i's entry.
func (d *Device) synthesizeRootDirSector(buf []byte) {
	label := volumeLabelEntry(d.reg.cfg)
	label.writeTo(buf[0:direntSize])

	for i := range d.reg.files {
		f := &d.reg.files[i]
		e := fileEntry(f, uint16(f.startCluster))
		off := (i + 1) * direntSize
		if off+direntSize > len(buf) {
			break
		}
		e.writeTo(buf[off : off+direntSize])
	}
}

// readDataSector walks the file list to find the file (if any) owning
// sectionIndex, and copies its bytes in.
func (d *Device) readDataSector(sectionIndex uint32, buf []byte) {
	blockIndex := uint32(0)
	for i := range d.reg.files {
		f := &d.reg.files[i]
		n := uint32(f.blockCount)
		if sectionIndex < blockIndex+n {
			offset := int64(sectionIndex-blockIndex) * BlockBytes
			nr, err := f.view.ReadAt(buf, offset)
			_ = nr
			_ = err // short/EOF reads are expected at file end; buf stays zero beyond it.
			return
		}
		blockIndex += n
	}
	// No file matches: UF2 window or beyond. Buffer stays zero.
}

// WriteBlock consumes buf (which must be BlockBytes long) into lba. Every
// region policy that isn't "data, read-write file" — including an
// out-of-range lba — logs and returns nil without mutating anything.
func (d *Device) WriteBlock(lba uint32, buf []byte) error {
	if len(buf) != BlockBytes {
		return errors.Errorf("ghostfat: buffer must be %d bytes, got %d", BlockBytes, len(buf))
	}
	if lba > d.MaxLBA() {
		d.warn("write lba out of range ignored", slog.Uint64("lba", uint64(lba)), slog.Uint64("max_lba", uint64(d.MaxLBA())))
		return nil
	}

	switch d.classify(lba) {
	case regionBoot:
		d.warn("write to boot sector ignored", slog.Uint64("lba", uint64(lba)))
	case regionFAT:
		d.warn("write to FAT region ignored", slog.Uint64("lba", uint64(lba)))
	case regionRootDir:
		d.warn("write to root directory ignored", slog.Uint64("lba", uint64(lba)))
	default:
		sectionIndex := lba - d.reg.cfg.startClusters()
		d.writeDataSector(sectionIndex, buf, lba)
	}
	return nil
}

func (d *Device) writeDataSector(sectionIndex uint32, buf []byte, lba uint32) {
	blockIndex := uint32(0)
	for i := range d.reg.files {
		f := &d.reg.files[i]
		n := uint32(f.blockCount)
		if sectionIndex < blockIndex+n {
			if !f.view.Writable() {
				d.logerror("write to read-only file ignored",
					slog.Uint64("lba", uint64(lba)), slog.String("file", string(f.name8_3[:])))
				return
			}
			offset := int64(sectionIndex-blockIndex) * BlockBytes
			_, _ = f.view.WriteAt(buf, offset)
			return
		}
		blockIndex += n
	}
	d.warn("write to unmapped data sector ignored", slog.Uint64("lba", uint64(lba)))
}
