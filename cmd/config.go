// cmd/config.go
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ldaFileConfig mirrors the lda subcommand's flags for optional YAML
// loading (grounded on sim/bundle.go's PolicyBundle pattern). A nil
// pointer field means "not set in the file"; it never overrides a flag.
type ldaFileConfig struct {
	Topic      *int     `yaml:"topic"`
	Alpha      *float64 `yaml:"alpha"`
	Beta       *float64 `yaml:"beta"`
	Seed       *int64   `yaml:"seed"`
	Iteration  *int     `yaml:"iteration"`
	Asymmetry  *bool    `yaml:"asymmetry"`
	Train      *string  `yaml:"train"`
	Test       *string  `yaml:"test"`
	Vocab      *string  `yaml:"vocab"`
}

// hdpLdaFileConfig mirrors the hdp-lda subcommand's flags.
type hdpLdaFileConfig struct {
	Alpha      *float64 `yaml:"alpha"`
	AlphaShape *float64 `yaml:"alpha_shape"`
	AlphaScale *float64 `yaml:"alpha_scale"`
	Beta       *float64 `yaml:"beta"`
	Gamma      *float64 `yaml:"gamma"`
	GammaShape *float64 `yaml:"gamma_shape"`
	GammaScale *float64 `yaml:"gamma_scale"`
	Seed       *int64   `yaml:"seed"`
	Iteration  *int     `yaml:"iteration"`
	Train      *string  `yaml:"train"`
	Test       *string  `yaml:"test"`
	Vocab      *string  `yaml:"vocab"`
}

// loadYAMLConfig strictly decodes path into out, rejecting unrecognized
// keys so a typo in a config file fails loudly rather than being ignored.
func loadYAMLConfig(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyIntFlag sets *dst from file only when the flag wasn't explicitly
// set on the command line (cmd.Flags().Changed wins over the YAML value).
func applyIntFlag(cmd *cobra.Command, name string, dst *int, file *int) {
	if file != nil && !cmd.Flags().Changed(name) {
		*dst = *file
	}
}

func applyInt64Flag(cmd *cobra.Command, name string, dst *int64, file *int64) {
	if file != nil && !cmd.Flags().Changed(name) {
		*dst = *file
	}
}

func applyFloat64Flag(cmd *cobra.Command, name string, dst *float64, file *float64) {
	if file != nil && !cmd.Flags().Changed(name) {
		*dst = *file
	}
}

func applyBoolFlag(cmd *cobra.Command, name string, dst *bool, file *bool) {
	if file != nil && !cmd.Flags().Changed(name) {
		*dst = *file
	}
}

func applyStringFlag(cmd *cobra.Command, name string, dst *string, file *string) {
	if file != nil && !cmd.Flags().Changed(name) {
		*dst = *file
	}
}
