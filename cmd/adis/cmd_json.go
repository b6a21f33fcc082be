package main

import (
	json "github.com/goccy/go-json"
	"github.com/jpl-au/adis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	keepPadding bool
	namesPath   string
	indent      bool
)

var jsonCmd = &cobra.Command{
	Use:   "json [file]",
	Short: "Convert an ADIS file to JSON",
	Long: `Parses an ADIS file and writes its JSON mapping: a list of logical
files, each an object of entity number to block.

With --names, every field definition gets a "name" taken from a YAML file
of item-number suffixes. The longest matching suffix wins:

  "00800001": animal id
  "0003": weight`,
	Args: cobra.ExactArgs(1),
	RunE: runJSON,
}

func runJSON(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	m := doc.Mapping(adis.Options{KeepPadding: keepPadding})
	if namesPath != "" {
		names, err := loadNames(namesPath)
		if err != nil {
			return err
		}
		logger.Debug("loaded names", zap.String("path", namesPath), zap.Int("entries", len(names)))
		m = m.Annotate(names)
	}

	var data []byte
	if indent {
		data, err = json.MarshalIndent(m, "", "  ")
	} else {
		data, err = json.Marshal(m)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd, append(data, '\n'))
}
