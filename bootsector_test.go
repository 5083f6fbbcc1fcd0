package ghostfat

import "testing"

func TestBootBlockSignatureAndFilesystemType(t *testing.T) {
	cfg := DefaultConfig(8000)
	bb := newBootBlock(cfg)
	var buf [512]byte
	if err := bb.writeTo(buf[:]); err != nil {
		t.Fatalf("writeTo: %v", err)
	}
	if buf[510] != 0x55 || buf[511] != 0xAA {
		t.Fatalf("boot signature = %02x %02x, want 55 AA", buf[510], buf[511])
	}
	if string(buf[54:62]) != "FAT16   " {
		t.Fatalf("filesystem type = %q, want %q", buf[54:62], "FAT16   ")
	}
	if buf[0] != 0xEB || buf[1] != 0x3C || buf[2] != 0x90 {
		t.Fatalf("jump instruction = % x, want EB 3C 90", buf[0:3])
	}
}

func TestBootBlockTotalSectorsField(t *testing.T) {
	// Small volume: must use the 16-bit total-sectors field.
	cfg := DefaultConfig(8000)
	bb := newBootBlock(cfg)
	var buf [512]byte
	bb.writeTo(buf[:])
	got := byteOrder.Uint16(buf[19:21])
	if got != 8000 {
		t.Fatalf("TotSec16 = %d, want 8000", got)
	}

	// Large volume: falls back to the 32-bit field, 16-bit field left zero.
	cfg = DefaultConfig(0x10000)
	bb = newBootBlock(cfg)
	var buf2 [512]byte
	bb.writeTo(buf2[:])
	if got16 := byteOrder.Uint16(buf2[19:21]); got16 != 0 {
		t.Fatalf("TotSec16 = %d, want 0 for large volume", got16)
	}
	if got32 := byteOrder.Uint32(buf2[32:36]); got32 != 0x10000 {
		t.Fatalf("TotSec32 = %d, want %d", got32, 0x10000)
	}
}
