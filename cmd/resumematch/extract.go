package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the text of a resume file",
	Long:  "Extract text from a PDF, DOCX or plain text file. PDF pages without a text layer are rendered and run through OCR.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	extractor, _, log, err := newExtractor()
	if err != nil {
		return err
	}
	defer log.Sync()

	text, err := extractFile(cmd, extractor, args[0])
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
