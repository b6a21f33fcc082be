package main

import (
	"fmt"

	"github.com/jpl-au/adis"
	"github.com/spf13/cobra"
)

var algName string

var algorithms = map[string]int{
	"xxh3":    adis.AlgXXHash3,
	"fnv1a":   adis.AlgFNV1a,
	"blake2b": adis.AlgBlake2b,
}

var digestCmd = &cobra.Command{
	Use:   "digest [file]",
	Short: "Print the fingerprint of an ADIS file",
	Long: `Prints a 16 hex character hash of the file's canonical ADIS text.
Files that differ only in line endings, blank lines or comments share a
fingerprint.`,
	Args: cobra.ExactArgs(1),
	RunE: runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	alg, ok := algorithms[algName]
	if !ok {
		return fmt.Errorf("%w: %q", adis.ErrUnknownAlgorithm, algName)
	}
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	fp, err := doc.Fingerprint(alg)
	if err != nil {
		return err
	}
	return writeOutput(cmd, []byte(fp+"\n"))
}
