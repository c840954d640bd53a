// Package model implements the collapsed-Gibbs-sampling topic model
// inference engines: fixed-topic-count LDA and nonparametric HDP-LDA.
//
// # Reading Guide
//
// Start here:
//   - dataset.go: the immutable bag-of-words corpus both engines train on
//   - rng.go: the engine-owned PRNG and the Gamma/Beta/discrete samplers
//     every resampling step draws from
//   - lda.go: the fixed-K collapsed Gibbs sampler
//   - hdp.go: the Chinese-Restaurant-Franchise sampler behind HDP-LDA
//
// # Architecture
//
// LdaEngine and HdpLdaEngine share no runtime dispatch — they are
// distinct engines with overlapping but not identical sufficient-
// statistic schemas. They share only leaf-level helpers: the DataSet
// loader, the PRNG/sampler primitives in rng.go, and the top-N-words
// report formatting in report.go.
//
// Every sufficient-statistic table is exclusively owned by its engine;
// two engines may coexist in the same process without interference.
// Given the same seed, corpus, and hyperparameters, two runs of either
// engine produce bit-identical trajectories — see rng.go for the single
// ordered PRNG stream that guarantees this.
package model
