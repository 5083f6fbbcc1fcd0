package ghostfat

import "testing"

func TestRegistryAssignsSequentialClusters(t *testing.T) {
	f1, err := NewFile("A.BIN", NewReadOnlyBytes(make([]byte, 1024)), AttrReadOnly) // 2 clusters
	if err != nil {
		t.Fatal(err)
	}
	f2, err := NewFile("B.BIN", NewReadOnlyBytes(make([]byte, 10)), AttrReadOnly) // 1 cluster
	if err != nil {
		t.Fatal(err)
	}
	reg, err := NewRegistry([]File{f1, f2}, DefaultConfig(8000))
	if err != nil {
		t.Fatal(err)
	}
	if reg.files[0].startCluster != 2 {
		t.Fatalf("file0 startCluster = %d, want 2", reg.files[0].startCluster)
	}
	if reg.files[1].startCluster != 4 {
		t.Fatalf("file1 startCluster = %d, want 4", reg.files[1].startCluster)
	}
}

func TestRegistryRejectsEmptyFileList(t *testing.T) {
	_, err := NewRegistry(nil, DefaultConfig(8000))
	if err != ErrNoFiles {
		t.Fatalf("err = %v, want ErrNoFiles", err)
	}
}

func TestRegistryRejectsOversizedFiles(t *testing.T) {
	// A volume far too small to hold even the UF2 window plus one file.
	cfg := DefaultConfig(50)
	f, err := NewFile("A.BIN", NewReadOnlyBytes(make([]byte, 10)), AttrReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewRegistry([]File{f}, cfg)
	if err == nil {
		t.Fatal("expected an error for a volume too small to fit the UF2 window")
	}
}
