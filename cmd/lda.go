// cmd/lda.go
package cmd

import (
	"fmt"
	"time"

	"github.com/henry0312/gibbslda/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	ldaTopic      int
	ldaAlpha      float64
	ldaBeta       float64
	ldaSeed       int64
	ldaIteration  int
	ldaAsymmetry  bool
	ldaTrainPath  string
	ldaTestPath   string
	ldaVocabPath  string
	ldaConfigPath string
)

var ldaCmd = &cobra.Command{
	Use:   "lda",
	Short: "Fit a fixed-topic-count LDA model via collapsed Gibbs sampling",
	RunE:  runLda,
}

func init() {
	ldaCmd.Flags().IntVar(&ldaTopic, "topic", 30, "Number of topics K")
	ldaCmd.Flags().Float64Var(&ldaAlpha, "alpha", 0.1, "Document-topic Dirichlet prior mass (default 50/K when K>50 and unset)")
	ldaCmd.Flags().Float64Var(&ldaBeta, "beta", 0.01, "Topic-word Dirichlet prior mass")
	ldaCmd.Flags().Int64Var(&ldaSeed, "seed", 0, "PRNG seed (default: drawn from OS entropy)")
	ldaCmd.Flags().IntVar(&ldaIteration, "iteration", 10, "Number of Gibbs sampling sweeps")
	ldaCmd.Flags().BoolVar(&ldaAsymmetry, "asymmetry", false, "Use Minka's fixed-point update for an asymmetric document-topic prior")
	ldaCmd.Flags().StringVar(&ldaTrainPath, "train", "", "Training corpus path (required)")
	ldaCmd.Flags().StringVar(&ldaTestPath, "test", "", "Held-out corpus path for perplexity (defaults to --train)")
	ldaCmd.Flags().StringVar(&ldaVocabPath, "vocab", "", "Vocabulary file path, for topic-word reports")
	ldaCmd.Flags().StringVar(&ldaConfigPath, "config", "", "Optional YAML file holding any of the above fields")
}

func runLda(cmd *cobra.Command, args []string) error {
	var fileCfg *ldaFileConfig
	if ldaConfigPath != "" {
		fileCfg = &ldaFileConfig{}
		if err := loadYAMLConfig(ldaConfigPath, fileCfg); err != nil {
			return err
		}
		applyIntFlag(cmd, "topic", &ldaTopic, fileCfg.Topic)
		applyFloat64Flag(cmd, "alpha", &ldaAlpha, fileCfg.Alpha)
		applyFloat64Flag(cmd, "beta", &ldaBeta, fileCfg.Beta)
		applyInt64Flag(cmd, "seed", &ldaSeed, fileCfg.Seed)
		applyIntFlag(cmd, "iteration", &ldaIteration, fileCfg.Iteration)
		applyBoolFlag(cmd, "asymmetry", &ldaAsymmetry, fileCfg.Asymmetry)
		applyStringFlag(cmd, "train", &ldaTrainPath, fileCfg.Train)
		applyStringFlag(cmd, "test", &ldaTestPath, fileCfg.Test)
		applyStringFlag(cmd, "vocab", &ldaVocabPath, fileCfg.Vocab)
	}

	if ldaTrainPath == "" {
		return &model.ConfigError{Msg: "--train is required"}
	}

	alphaExplicit := cmd.Flags().Changed("alpha") || (fileCfg != nil && fileCfg.Alpha != nil)
	seedExplicit := cmd.Flags().Changed("seed") || (fileCfg != nil && fileCfg.Seed != nil)

	if !alphaExplicit && ldaTopic > 50 {
		ldaAlpha = 50.0 / float64(ldaTopic)
	}
	if !seedExplicit {
		ldaSeed = model.RandomSeed()
	}

	train, err := model.LoadDataSet(ldaTrainPath)
	if err != nil {
		return err
	}
	test := train
	if ldaTestPath != "" {
		test, err = model.LoadDataSet(ldaTestPath)
		if err != nil {
			return err
		}
	}
	var vocab []string
	if ldaVocabPath != "" {
		vocab, err = model.LoadVocabulary(ldaVocabPath)
		if err != nil {
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"topic": ldaTopic, "alpha": ldaAlpha, "beta": ldaBeta, "seed": ldaSeed, "asymmetry": ldaAsymmetry,
	}).Info("starting lda")

	engine := model.NewLdaEngine(model.LdaConfig{
		K: ldaTopic, Alpha: ldaAlpha, Beta: ldaBeta, Seed: ldaSeed,
		Asymmetric: ldaAsymmetry, Train: train, Test: test,
	})

	start := time.Now()
	out := cmd.OutOrStdout()
	for i := 0; i <= ldaIteration; i++ {
		fmt.Fprintf(out, "%d\t%f\n", i, engine.Evaluate())
		if i == ldaIteration {
			break
		}
		if ldaAsymmetry {
			engine.UpdateAlpha()
		}
		engine.Sweep()
	}
	fmt.Fprintf(out, "elapsed: %s\n", formatElapsed(time.Since(start)))

	for z := 0; z < engine.LiveTopicCount(); z++ {
		words := engine.TopicWords(z, 10)
		model.PrintTopic(out, vocab, z, engine.TopicSize(z), words)
	}

	return nil
}

// formatElapsed renders a duration as "HhMmS.mmms", omitting leading
// zero-valued units the way Lda::learn's elapsed-time report does.
func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := d.Seconds() - float64(h*3600) - float64(m*60)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%dm%.3fs", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%.3fs", m, s)
	default:
		return fmt.Sprintf("%.3fs", s)
	}
}
