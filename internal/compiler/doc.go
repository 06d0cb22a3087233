// Package compiler drives each episode through subtitle normalization,
// muxing, and packaging, and fans episodes of a season out to workers.
//
// Every episode moves through Resolved, SubtitleNormalized, Muxed, and
// Packaged in order; the first failing stage ends that episode. A season
// compiles its normal episodes first and its specials second, and is
// complete only when every episode reached Packaged.
//
// Sequential runs stop at the first failure. Parallel runs stop dispatching
// new episodes after the first failure, let episodes already running finish,
// and report the first error. Output already packaged is never rolled back.
//
// Intermediates are staged outside the download tree, below the configured
// staging directory or a hidden directory in the output root, and removed
// when each episode finishes, whether it succeeded or not.
package compiler
