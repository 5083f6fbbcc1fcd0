package ghostfat_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/ghostfat/ghostfat"
	"github.com/ghostfat/ghostfat/internal/verify"
	"github.com/stretchr/testify/assert"
)

// mountDevice is the small end-to-end harness shared by the tests below:
// build a Device from files, then mount it with the
// deliberately-independent internal/verify reader, the way a real host
// FAT16 driver would.
func mountDevice(t *testing.T, files []ghostfat.File, numBlocks uint32) (*ghostfat.Device, *verify.Volume) {
	t.Helper()
	dev, err := ghostfat.NewDevice(files, ghostfat.DefaultConfig(numBlocks))
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	vol, err := verify.Mount(dev)
	if err != nil {
		t.Fatalf("verify.Mount: %v", err)
	}
	return dev, vol
}

func TestReadOnlyFileRoundTrip(t *testing.T) {
	data := []byte("UF2 Bootloader 1.2.3\r\nModel: BluePill\r\nBoard-ID: xyz_123\r\n")
	f, err := ghostfat.NewFile("INFO_UF2.TXT", ghostfat.NewReadOnlyBytes(data), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	_, vol := mountDevice(t, []ghostfat.File{f}, 8000)

	assert.Equal(t, "FAT16   ", vol.FATType())

	entries, err := vol.RootDir()
	if err != nil {
		t.Fatalf("RootDir: %v", err)
	}
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "INFO_UF2.TXT", entries[0].Name)
		assert.EqualValues(t, len(data), entries[0].Size)
	}

	got, err := vol.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	assert.Equal(t, data, got)
}

func TestMultiSectorReadOnlyFileRoundTrip(t *testing.T) {
	data := make([]byte, 1024)
	rand.New(rand.NewSource(1)).Read(data)
	f, err := ghostfat.NewFile("TEST.BIN", ghostfat.NewReadOnlyBytes(data), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	_, vol := mountDevice(t, []ghostfat.File{f}, 8000)

	entries, err := vol.RootDir()
	if err != nil || len(entries) != 1 {
		t.Fatalf("RootDir: %v %v", entries, err)
	}
	assert.EqualValues(t, 1024, entries[0].Size)

	got, err := vol.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	assert.Equal(t, data, got)
}

func TestWriteBlockUpdatesFileContents(t *testing.T) {
	buf := make([]byte, 8)
	f, err := ghostfat.NewFile("TEST.TXT", ghostfat.NewReadWriteBytes(buf), ghostfat.AttrArchive)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	dev, vol := mountDevice(t, []ghostfat.File{f}, 8000)
	entries, _ := vol.RootDir()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	var block [512]byte
	copy(block[:], "DEF456\r\n")
	sector := vol.StartClusters() + uint32(entries[0].StartCluster-2)
	if err := dev.WriteBlock(sector, block[:]); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	got, err := vol.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	assert.Equal(t, []byte("DEF456\r\n"), got)
}

func TestMultiSectorWriteUpdatesFileContents(t *testing.T) {
	buf := make([]byte, 1024)
	f, err := ghostfat.NewFile("TEST.BIN", ghostfat.NewReadWriteBytes(buf), ghostfat.AttrArchive)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	dev, vol := mountDevice(t, []ghostfat.File{f}, 8000)
	entries, _ := vol.RootDir()

	data := make([]byte, 1024)
	rand.New(rand.NewSource(2)).Read(data)
	for i := 0; i < 2; i++ {
		var block [512]byte
		copy(block[:], data[i*512:(i+1)*512])
		sector := vol.StartClusters() + uint32(entries[0].StartCluster-2) + uint32(i)
		if err := dev.WriteBlock(sector, block[:]); err != nil {
			t.Fatalf("WriteBlock: %v", err)
		}
	}

	got, err := vol.ReadFile(entries[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	assert.Equal(t, data, got)
}

func TestMultipleFilesGetSequentialClustersAndRoundTrip(t *testing.T) {
	d1 := []byte("abc123456")
	d2 := []byte("abc123457")
	f1, err := ghostfat.NewFile("TEST1.TXT", ghostfat.NewReadOnlyBytes(d1), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := ghostfat.NewFile("TEST2.TXT", ghostfat.NewReadOnlyBytes(d2), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}

	_, vol := mountDevice(t, []ghostfat.File{f1, f2}, 8000)
	entries, err := vol.RootDir()
	if err != nil || len(entries) != 2 {
		t.Fatalf("RootDir: %v %v", entries, err)
	}
	assert.Equal(t, "TEST1.TXT", entries[0].Name)
	assert.Equal(t, "TEST2.TXT", entries[1].Name)
	assert.EqualValues(t, 2, entries[0].StartCluster)
	assert.EqualValues(t, 3, entries[1].StartCluster)

	got1, err := vol.ReadFile(entries[0])
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, d1, got1)
	got2, err := vol.ReadFile(entries[1])
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, d2, got2)
}

func TestWriteToReadOnlyFileIsNoOp(t *testing.T) {
	data := []byte("immutable")
	f, err := ghostfat.NewFile("RO.TXT", ghostfat.NewReadOnlyBytes(data), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}

	dev, vol := mountDevice(t, []ghostfat.File{f}, 8000)
	entries, _ := vol.RootDir()

	var block [512]byte
	copy(block[:], bytes.Repeat([]byte{'X'}, 512))
	sector := vol.StartClusters() + uint32(entries[0].StartCluster-2)
	if err := dev.WriteBlock(sector, block[:]); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	got, err := vol.ReadFile(entries[0])
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, data, got)
}

func TestFAT0EqualsFAT1(t *testing.T) {
	f, err := ghostfat.NewFile("A.TXT", ghostfat.NewReadOnlyBytes([]byte("hello")), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	_, vol := mountDevice(t, []ghostfat.File{f}, 8000)

	eq, err := vol.FATEqual()
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, eq)
}

func TestUnoccupiedSectorsReadAsZero(t *testing.T) {
	f, err := ghostfat.NewFile("A.TXT", ghostfat.NewReadOnlyBytes([]byte("hello")), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	_, vol := mountDevice(t, []ghostfat.File{f}, 8000)

	zero, err := vol.ZeroSector(vol.StartRootDir() + 1)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, zero, "second root-dir sector should be all zero")

	// Far beyond the file's single cluster and the UF2 window: still zero.
	zero, err = vol.ZeroSector(vol.MaxLBA())
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, zero, "unmapped trailing data sector should be all zero")
}

func TestOutOfRangeLBAIsLoggedNotErrored(t *testing.T) {
	f, err := ghostfat.NewFile("A.TXT", ghostfat.NewReadOnlyBytes([]byte("hello")), ghostfat.AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	dev, err := ghostfat.NewDevice([]ghostfat.File{f}, ghostfat.DefaultConfig(8000))
	if err != nil {
		t.Fatal(err)
	}

	var buf [512]byte
	for i := range buf {
		buf[i] = 0xAA
	}
	if err := dev.ReadBlock(dev.MaxLBA()+1, buf[:]); err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	assert.Equal(t, make([]byte, 512), buf[:], "an out-of-range read should fill buf with zeros, not error")

	copy(buf[:], bytes.Repeat([]byte{'X'}, 512))
	if err := dev.WriteBlock(dev.MaxLBA()+1, buf[:]); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}
}
