package preflight

import (
	"context"

	"bilimux/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Targets names the directories a run touches. Empty fields are skipped.
type Targets struct {
	Input  string
	Output string
}

// RunAll executes all applicable preflight checks for the given config and
// run targets.
func RunAll(ctx context.Context, cfg *config.Config, targets Targets) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	for _, status := range CheckSystemDeps(ctx, cfg) {
		detail := status.Command
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{Name: status.Name, Passed: status.Available, Detail: detail})
	}

	if targets.Input != "" {
		results = append(results, CheckReadableDirectory("Input directory", targets.Input))
	}
	if targets.Output != "" {
		results = append(results, CheckCreatableDirectory("Output directory", targets.Output))
	}
	if cfg.Paths.StagingDir != "" {
		results = append(results, CheckCreatableDirectory("Staging directory", cfg.Paths.StagingDir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
