// cmd/hdplda.go
package cmd

import (
	"fmt"
	"time"

	"github.com/henry0312/gibbslda/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	hdpAlpha      float64
	hdpAlphaShape float64
	hdpAlphaScale float64
	hdpBeta       float64
	hdpGamma      float64
	hdpGammaShape float64
	hdpGammaScale float64
	hdpSeed       int64
	hdpIteration  int
	hdpTrainPath  string
	hdpTestPath   string
	hdpVocabPath  string
	hdpConfigPath string
)

var hdpLdaCmd = &cobra.Command{
	Use:   "hdp-lda",
	Short: "Fit a nonparametric HDP-LDA model via the Chinese Restaurant Franchise sampler",
	RunE:  runHdpLda,
}

func init() {
	hdpLdaCmd.Flags().Float64Var(&hdpAlpha, "alpha", 0, "Within-document concentration (default: alpha_shape*alpha_scale)")
	hdpLdaCmd.Flags().Float64Var(&hdpAlphaShape, "alpha_shape", 1, "Gamma hyperprior shape on alpha")
	hdpLdaCmd.Flags().Float64Var(&hdpAlphaScale, "alpha_scale", 1, "Gamma hyperprior scale on alpha")
	hdpLdaCmd.Flags().Float64Var(&hdpBeta, "beta", 0.5, "Topic-word Dirichlet prior mass")
	hdpLdaCmd.Flags().Float64Var(&hdpGamma, "gamma", 0, "Across-corpus concentration (default: gamma_shape*gamma_scale)")
	hdpLdaCmd.Flags().Float64Var(&hdpGammaShape, "gamma_shape", 1, "Gamma hyperprior shape on gamma")
	hdpLdaCmd.Flags().Float64Var(&hdpGammaScale, "gamma_scale", 1, "Gamma hyperprior scale on gamma")
	hdpLdaCmd.Flags().Int64Var(&hdpSeed, "seed", 0, "PRNG seed (default: drawn from OS entropy)")
	hdpLdaCmd.Flags().IntVar(&hdpIteration, "iteration", 10, "Number of Gibbs sampling sweeps")
	hdpLdaCmd.Flags().StringVar(&hdpTrainPath, "train", "", "Training corpus path (required)")
	hdpLdaCmd.Flags().StringVar(&hdpTestPath, "test", "", "Held-out corpus path for perplexity (defaults to --train)")
	hdpLdaCmd.Flags().StringVar(&hdpVocabPath, "vocab", "", "Vocabulary file path, for topic-word reports")
	hdpLdaCmd.Flags().StringVar(&hdpConfigPath, "config", "", "Optional YAML file holding any of the above fields")
}

func runHdpLda(cmd *cobra.Command, args []string) error {
	var fileCfg *hdpLdaFileConfig
	if hdpConfigPath != "" {
		fileCfg = &hdpLdaFileConfig{}
		if err := loadYAMLConfig(hdpConfigPath, fileCfg); err != nil {
			return err
		}
		applyFloat64Flag(cmd, "alpha", &hdpAlpha, fileCfg.Alpha)
		applyFloat64Flag(cmd, "alpha_shape", &hdpAlphaShape, fileCfg.AlphaShape)
		applyFloat64Flag(cmd, "alpha_scale", &hdpAlphaScale, fileCfg.AlphaScale)
		applyFloat64Flag(cmd, "beta", &hdpBeta, fileCfg.Beta)
		applyFloat64Flag(cmd, "gamma", &hdpGamma, fileCfg.Gamma)
		applyFloat64Flag(cmd, "gamma_shape", &hdpGammaShape, fileCfg.GammaShape)
		applyFloat64Flag(cmd, "gamma_scale", &hdpGammaScale, fileCfg.GammaScale)
		applyInt64Flag(cmd, "seed", &hdpSeed, fileCfg.Seed)
		applyIntFlag(cmd, "iteration", &hdpIteration, fileCfg.Iteration)
		applyStringFlag(cmd, "train", &hdpTrainPath, fileCfg.Train)
		applyStringFlag(cmd, "test", &hdpTestPath, fileCfg.Test)
		applyStringFlag(cmd, "vocab", &hdpVocabPath, fileCfg.Vocab)
	}

	if hdpTrainPath == "" {
		return &model.ConfigError{Msg: "--train is required"}
	}

	alphaExplicit := cmd.Flags().Changed("alpha") || (fileCfg != nil && fileCfg.Alpha != nil)
	gammaExplicit := cmd.Flags().Changed("gamma") || (fileCfg != nil && fileCfg.Gamma != nil)
	seedExplicit := cmd.Flags().Changed("seed") || (fileCfg != nil && fileCfg.Seed != nil)

	if !alphaExplicit {
		hdpAlpha = hdpAlphaShape * hdpAlphaScale
	}
	if !gammaExplicit {
		hdpGamma = hdpGammaShape * hdpGammaScale
	}
	if !seedExplicit {
		hdpSeed = model.RandomSeed()
	}

	train, err := model.LoadDataSet(hdpTrainPath)
	if err != nil {
		return err
	}
	test := train
	if hdpTestPath != "" {
		test, err = model.LoadDataSet(hdpTestPath)
		if err != nil {
			return err
		}
	}
	var vocab []string
	if hdpVocabPath != "" {
		vocab, err = model.LoadVocabulary(hdpVocabPath)
		if err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"alpha": hdpAlpha, "gamma": hdpGamma, "beta": hdpBeta, "seed": hdpSeed,
	}).Info("starting hdp-lda")

	engine := model.NewHdpLdaEngine(model.HdpLdaConfig{
		Alpha: hdpAlpha, AlphaA: hdpAlphaShape, AlphaB: hdpAlphaScale,
		Beta: hdpBeta, Gamma: hdpGamma, GammaA: hdpGammaShape, GammaB: hdpGammaScale,
		Seed: hdpSeed, Train: train, Test: test,
	})

	start := time.Now()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "iter\talpha\tgamma\ttopics\tperplexity")
	for i := 1; i <= hdpIteration; i++ {
		fmt.Fprintf(out, "%d\t%f\t%f\t", i, engine.Alpha, engine.Gamma)
		engine.Sweep()
		fmt.Fprintf(out, "%d\t%f\n", engine.LiveTopicCount(), engine.Evaluate())
	}
	fmt.Fprintf(out, "elapsed: %s\n", formatElapsed(time.Since(start)))

	k := 0
	for _, live := range engine.Dishes {
		if live {
			words := engine.TopicWords(k, 10)
			model.PrintTopic(out, vocab, k, engine.TopicSize(k), words)
		}
		k++
	}

	return nil
}
