package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dhamidi/dataclass/java"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the structural model of a .java file as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error

			if len(args) == 0 {
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				if ext := filepath.Ext(args[0]); ext != ".java" {
					return fmt.Errorf("expected .java file, got %s", ext)
				}
				source, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			file, err := java.Parse(source)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			out, err := json.MarshalIndent(file, "", "  ")
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	return cmd
}
