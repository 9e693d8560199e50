// Command huffrz compresses text files to .rz archives and back.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seif/huffrz"
)

func main() {
	root := &cobra.Command{
		Use:          "huffrz",
		Short:        "Compress and decompress files to and from .rz archives",
		SilenceUsage: true,
	}
	root.AddCommand(compressCmd(), decompressCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func compressCmd() *cobra.Command {
	var noChecksum bool
	cmd := &cobra.Command{
		Use:   "compress <file>...",
		Short: "Compress the given files to <file>.rz",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []huffrz.Option
			if noChecksum {
				opts = append(opts, huffrz.WithoutChecksum())
			}
			// Identical files across one invocation compress once.
			cache, err := huffrz.NewCache(64, opts...)
			if err != nil {
				return err
			}
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				archive, err := cache.Compress(data)
				if err != nil {
					return fmt.Errorf("compress %s: %w", path, err)
				}
				out := path + ".rz"
				if err := os.WriteFile(out, archive, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d bytes (%s)\n",
					out, len(data), len(archive), ratio(len(data), len(archive)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noChecksum, "no-checksum", false, "omit the payload checksum from archives")
	return cmd
}

func decompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompress <file.rz>...",
		Short: "Restore the given .rz archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				archive, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				data, err := huffrz.Decompress(archive)
				if err != nil {
					return fmt.Errorf("decompress %s: %w", path, err)
				}
				out := outputPath(path)
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d bytes\n", out, len(archive), len(data))
			}
			return nil
		},
	}
}

// outputPath strips the .rz suffix, falling back to a .txt suffix when
// the archive was named without one.
func outputPath(path string) string {
	if out := strings.TrimSuffix(path, ".rz"); out != path {
		return out
	}
	return path + ".txt"
}

func ratio(original, compressed int) string {
	if original == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(compressed)/float64(original)*100)
}
