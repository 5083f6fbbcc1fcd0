package ghostfat

import "errors"

// Sentinel errors. ErrNameTooLong and ErrInvalidChar come from NewFile when
// an 8.3 short name cannot be derived; ErrNoFiles, ErrRegionOverlap and
// ErrBadGeometry come from NewRegistry.
var (
	ErrNameTooLong  = errors.New("ghostfat: name component too long for 8.3 format")
	ErrInvalidChar  = errors.New("ghostfat: name contains a character outside the FAT16 short-name set")
	ErrNoFiles      = errors.New("ghostfat: registry must contain at least one file")
	ErrRegionOverlap = errors.New("ghostfat: data region cannot hold registered files and the UF2 window")
	ErrBadGeometry  = errors.New("ghostfat: config geometry violates start_fat0 < start_rootdir < start_clusters <= num_blocks")

	errReadOnlyFile = errors.New("ghostfat: write to read-only file view")
)
