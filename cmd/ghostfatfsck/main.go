// Command ghostfatfsck re-opens a GhostFAT .img file (as produced by
// ghostfatctl, or any FAT16 image) and checks its invariants byte-for-byte:
// FAT0 == FAT1, a 0x55AA boot signature, a FAT16 filesystem type string,
// and an all-zero second root-directory sector (later root-directory
// sectors are not checked). Built with cobra rather
// than ghostfatctl's urfave/cli, following ostafen-digler/cmd's
// root-command layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostfat/ghostfat/internal/verify"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ghostfatfsck",
		Short: "Check a FAT16 image against GhostFAT's synthesis invariants",
	}
	root.AddCommand(checkCmd())
	return root
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check IMAGE.img",
		Short: "Run the invariant checks against IMAGE.img",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	dev, err := openImageDevice(path)
	if err != nil {
		return err
	}

	vol, err := verify.Mount(dev)
	if err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	if got := vol.FATType(); got != "FAT16   " {
		return fmt.Errorf("filesystem type = %q, want %q", got, "FAT16   ")
	}
	eq, err := vol.FATEqual()
	if err != nil {
		return fmt.Errorf("comparing FAT copies: %w", err)
	}
	if !eq {
		return fmt.Errorf("FAT0 and FAT1 differ")
	}
	zero, err := vol.ZeroSector(vol.StartRootDir() + 1)
	if err != nil {
		return fmt.Errorf("checking root directory tail: %w", err)
	}
	if !zero {
		return fmt.Errorf("root directory sector beyond the first is not zeroed")
	}

	entries, err := vol.RootDir()
	if err != nil {
		return fmt.Errorf("reading root directory: %w", err)
	}
	fmt.Printf("OK: %s is a valid FAT16 image, %d root-directory entries\n", path, len(entries))
	return nil
}
