// Command ghostfatctl builds a GhostFAT device from a directory of files
// ("dir") or a CSV manifest ("build") and writes every block of it to a full
// .img file on disk. It has no per-block read, write or dump commands. It's
// an ambient CLI front
// end around the ghostfat core, not part of the core itself, following
// dargueta-disko/cmd/main.go's urfave/cli shape.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	"github.com/noxer/bytewriter"
	"github.com/urfave/cli/v2"

	"github.com/ghostfat/ghostfat"
)

// manifestRow is one line of a CSV file manifest, per SPEC_FULL.md §6.
type manifestRow struct {
	Name string `csv:"name"`
	Path string `csv:"path"`
	Mode string `csv:"mode"` // "ro" or "rw"
}

func main() {
	app := &cli.App{
		Name:  "ghostfatctl",
		Usage: "Build and inspect synthetic FAT16 GhostFAT images",
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "Build a .img file from a CSV manifest of files",
				ArgsUsage: "MANIFEST.csv OUT.img",
				Action:    buildImage,
			},
			{
				Name:      "dir",
				Usage:     "Build a .img file from every regular file in a directory",
				ArgsUsage: "DIR OUT.img",
				Action:    buildFromDir,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("ghostfatctl: %s", err)
	}
}

func buildImage(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: ghostfatctl build MANIFEST.csv OUT.img")
	}
	manifestPath, outPath := c.Args().Get(0), c.Args().Get(1)

	f, err := os.Open(manifestPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var rows []manifestRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	var files []ghostfat.File
	for _, row := range rows {
		data, err := os.ReadFile(row.Path)
		if err != nil {
			return fmt.Errorf("read %s: %w", row.Path, err)
		}
		var view ghostfat.ByteView
		var extraAttrs uint8
		if row.Mode == "rw" {
			view = ghostfat.NewReadWriteBytes(data)
		} else {
			view = ghostfat.NewReadOnlyBytes(data)
			extraAttrs = ghostfat.AttrReadOnly
		}
		gf, err := ghostfat.NewFile(filepath.Base(row.Name), view, extraAttrs)
		if err != nil {
			return fmt.Errorf("file %s: %w", row.Name, err)
		}
		files = append(files, gf)
	}

	return writeImage(files, outPath)
}

func buildFromDir(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: ghostfatctl dir DIR OUT.img")
	}
	dir, outPath := c.Args().Get(0), c.Args().Get(1)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []ghostfat.File
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		gf, err := ghostfat.NewFile(e.Name(), ghostfat.NewReadOnlyBytes(data), ghostfat.AttrReadOnly)
		if err != nil {
			return fmt.Errorf("file %s: %w", e.Name(), err)
		}
		files = append(files, gf)
	}

	return writeImage(files, outPath)
}

// writeImage serves every block of a freshly built Device into outPath,
// assembling the image byte-by-byte with bytewriter.New the way
// dargueta-disko/file_systems/unixv1/format.go builds a formatted image.
func writeImage(files []ghostfat.File, outPath string) error {
	cfg := ghostfat.DefaultConfig(8000)
	dev, err := ghostfat.NewDevice(files, cfg)
	if err != nil {
		return fmt.Errorf("build device: %w", err)
	}

	image := make([]byte, int64(dev.MaxLBA()+1)*ghostfat.BlockBytes)
	writer := bytewriter.New(image)

	var block [ghostfat.BlockBytes]byte
	for lba := uint32(0); lba <= dev.MaxLBA(); lba++ {
		if err := dev.ReadBlock(lba, block[:]); err != nil {
			return fmt.Errorf("read lba %d: %w", lba, err)
		}
		if _, err := writer.Write(block[:]); err != nil {
			return fmt.Errorf("assemble image at lba %d: %w", lba, err)
		}
	}

	if err := os.WriteFile(outPath, image, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d files)\n", outPath, humanize.Bytes(uint64(len(image))), len(files))
	return nil
}
