package main

import (
	"fmt"
	"os"

	"github.com/ghostfat/ghostfat"
)

// imageDevice is a read-only view of a flat .img file as a
// verify.BlockDevice, letting ghostfatfsck check images it didn't build
// itself.
type imageDevice struct {
	data []byte
}

func openImageDevice(path string) (*imageDevice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%ghostfat.BlockBytes != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of %d bytes", path, len(data), ghostfat.BlockBytes)
	}
	return &imageDevice{data: data}, nil
}

func (d *imageDevice) ReadBlock(lba uint32, buf []byte) error {
	off := int64(lba) * ghostfat.BlockBytes
	if off+ghostfat.BlockBytes > int64(len(d.data)) {
		return fmt.Errorf("lba %d out of range", lba)
	}
	copy(buf, d.data[off:off+ghostfat.BlockBytes])
	return nil
}

func (d *imageDevice) MaxLBA() uint32 {
	return uint32(len(d.data)/ghostfat.BlockBytes) - 1
}
