package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate an ADIS file and report its size",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		logger.Error("invalid document", zap.String("path", args[0]), zap.Error(err))
		return err
	}
	st := doc.Stats()
	logger.Info("document ok", zap.String("path", args[0]),
		zap.Int("files", st.Files), zap.Int("blocks", st.Blocks), zap.Int("rows", st.Rows))
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "files=%d blocks=%d rows=%d\n", st.Files, st.Blocks, st.Rows)
	return err
}
