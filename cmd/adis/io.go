package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/adis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// readInput reads path, or stdin for "-", and unwraps a Zstd frame if the
// data starts with one.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if adis.IsCompressed(data) {
		logger.Debug("decompressing input", zap.String("path", path), zap.Int("bytes", len(data)))
		data, err = adis.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return data, nil
}

// loadDocument reads and parses an ADIS file.
func loadDocument(cmd *cobra.Command, path string) (*adis.Document, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := adis.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	st := doc.Stats()
	logger.Debug("parsed", zap.String("path", path),
		zap.Int("files", st.Files), zap.Int("blocks", st.Blocks), zap.Int("rows", st.Rows))
	return doc, nil
}

// loadNames reads a YAML mapping of item-number suffixes to names.
func loadNames(path string) (adis.Names, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}
	var names adis.Names
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse names %s: %w", path, err)
	}
	return names, nil
}

// writeOutput writes data to the --output file, or to the command's
// stdout when none is set.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.Info("wrote output", zap.String("path", output), zap.Int("bytes", len(data)))
	return nil
}
