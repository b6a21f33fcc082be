// Command adis converts ADIS files to and from their JSON mapping.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	output  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "adis",
	Short: "Convert and inspect ADIS agricultural data files",
	Long: `adis reads ADIS, the fixed-width line format used to exchange
agricultural data, and converts it to and from a JSON mapping.

Inputs may be plain or Zstd-compressed; compression is detected from the
frame header. Use "-" to read from stdin.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	jsonCmd.Flags().BoolVar(&keepPadding, "keep-padding", false, "Keep the space padding of text values")
	jsonCmd.Flags().StringVar(&namesPath, "names", "", "YAML file mapping item-number suffixes to display names")
	jsonCmd.Flags().BoolVar(&indent, "indent", false, "Indent the JSON output")

	adsCmd.Flags().BoolVar(&compressOut, "compress", false, "Write a Zstd-compressed ADIS file")

	digestCmd.Flags().StringVar(&algName, "alg", "xxh3", "Hash algorithm: xxh3, fnv1a or blake2b")

	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(adsCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
