package main

import (
	"fmt"

	"github.com/jpl-au/adis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compressOut bool

var adsCmd = &cobra.Command{
	Use:   "ads [file]",
	Short: "Convert a JSON mapping back to ADIS",
	Args:  cobra.ExactArgs(1),
	RunE:  runADS,
}

func runADS(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := adis.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var out []byte
	if compressOut {
		out, err = doc.DumpCompressed()
	} else {
		var text string
		text, err = doc.Dump()
		out = []byte(text)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	st := doc.Stats()
	logger.Debug("converted", zap.String("path", args[0]),
		zap.Int("files", st.Files), zap.Int("blocks", st.Blocks), zap.Bool("compressed", compressOut))
	return writeOutput(cmd, out)
}
