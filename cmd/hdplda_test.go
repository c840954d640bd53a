package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHdpLdaCmd_Defaults(t *testing.T) {
	// GIVEN the hdp-lda subcommand's registered flags
	// WHEN we check their defaults
	// THEN they must match spec.md §6's reference CLI surface
	assert.Equal(t, "1", hdpLdaCmd.Flags().Lookup("alpha_shape").DefValue)
	assert.Equal(t, "1", hdpLdaCmd.Flags().Lookup("alpha_scale").DefValue)
	assert.Equal(t, "0.5", hdpLdaCmd.Flags().Lookup("beta").DefValue)
	assert.Equal(t, "1", hdpLdaCmd.Flags().Lookup("gamma_shape").DefValue)
	assert.Equal(t, "1", hdpLdaCmd.Flags().Lookup("gamma_scale").DefValue)
	assert.Equal(t, "10", hdpLdaCmd.Flags().Lookup("iteration").DefValue)
}

func freshHdpLdaCmd() *cobra.Command {
	c := &cobra.Command{Use: "hdp-lda", RunE: runHdpLda}
	c.Flags().Float64Var(&hdpAlpha, "alpha", 0, "")
	c.Flags().Float64Var(&hdpAlphaShape, "alpha_shape", 1, "")
	c.Flags().Float64Var(&hdpAlphaScale, "alpha_scale", 1, "")
	c.Flags().Float64Var(&hdpBeta, "beta", 0.5, "")
	c.Flags().Float64Var(&hdpGamma, "gamma", 0, "")
	c.Flags().Float64Var(&hdpGammaShape, "gamma_shape", 1, "")
	c.Flags().Float64Var(&hdpGammaScale, "gamma_scale", 1, "")
	c.Flags().Int64Var(&hdpSeed, "seed", 0, "")
	c.Flags().IntVar(&hdpIteration, "iteration", 10, "")
	c.Flags().StringVar(&hdpTrainPath, "train", "", "")
	c.Flags().StringVar(&hdpTestPath, "test", "", "")
	c.Flags().StringVar(&hdpVocabPath, "vocab", "", "")
	c.Flags().StringVar(&hdpConfigPath, "config", "", "")
	c.SetOut(&bytes.Buffer{})
	return c
}

func writeHdpTrainCorpus(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "train.dat")
	content := "2 3 8\n1 1 3\n1 2 2\n2 2 1\n2 3 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunHdpLda_MissingTrain_ReturnsConfigError(t *testing.T) {
	// GIVEN a command with no --train
	c := freshHdpLdaCmd()
	c.SetArgs([]string{})

	// WHEN it runs
	err := c.Execute()

	// THEN a config error surfaces
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--train")
}

func TestRunHdpLda_AlphaGammaDefaultToShapeTimesScale(t *testing.T) {
	// GIVEN a corpus and no explicit --alpha/--gamma
	dir := t.TempDir()
	train := writeHdpTrainCorpus(t, dir)

	c := freshHdpLdaCmd()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{"--train", train, "--alpha_shape", "2", "--alpha_scale", "3", "--gamma_shape", "4", "--gamma_scale", "5", "--iteration", "1"})

	// WHEN it runs
	require.NoError(t, c.Execute())

	// THEN alpha and gamma took their shape*scale defaults before the
	// first hyperparameter resample consumed them
	assert.Contains(t, out.String(), "1\t6.000000\t20.000000\t")
}

func TestRunHdpLda_Deterministic_SameSeedSameOutput(t *testing.T) {
	// GIVEN a tiny corpus and a fixed seed
	dir := t.TempDir()
	train := writeHdpTrainCorpus(t, dir)

	run := func() string {
		c := freshHdpLdaCmd()
		var out bytes.Buffer
		c.SetOut(&out)
		c.SetArgs([]string{"--train", train, "--iteration", "2", "--seed", "11"})
		require.NoError(t, c.Execute())
		return out.String()
	}

	// WHEN run twice with the same seed
	first := run()
	second := run()

	// THEN the full trajectory, including the topic dump, is identical
	assert.Equal(t, first, second)
	assert.Contains(t, first, "iter\talpha\tgamma\ttopics\tperplexity")
	assert.Contains(t, first, "elapsed:")
}

func TestRunHdpLda_ConfigFile_FillsUnsetFlags(t *testing.T) {
	// GIVEN a YAML config naming --beta and a corpus
	dir := t.TempDir()
	train := writeHdpTrainCorpus(t, dir)
	cfgPath := filepath.Join(dir, "hdp.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("beta: 0.25\niteration: 1\n"), 0o644))

	c := freshHdpLdaCmd()
	var out bytes.Buffer
	c.SetOut(&out)
	// WHEN --train and --config are given but --beta is not
	c.SetArgs([]string{"--train", train, "--config", cfgPath})
	require.NoError(t, c.Execute())

	// THEN the config file's beta took effect
	assert.Equal(t, 0.25, hdpBeta)
}
