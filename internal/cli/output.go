package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// outputFormat resolves --output, with --json as a shorthand.
func outputFormat(cmd *cobra.Command) (string, error) {
	if FlagJSON {
		return outputJSON, nil
	}
	switch FlagOutput {
	case outputText, outputJSON, outputYAML:
		return FlagOutput, nil
	case "":
		return outputText, nil
	}
	return "", fmt.Errorf("invalid --output %q: must be text, json or yaml", FlagOutput)
}

// structured reports whether cmd should print data instead of text.
func structured(cmd *cobra.Command) bool {
	f, _ := outputFormat(cmd)
	return f != outputText
}

// printData writes v as JSON or YAML to the command's output.
func printData(cmd *cobra.Command, v any) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	switch f {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
}
