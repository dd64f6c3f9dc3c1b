// Package analysis exposes the score_scenario operation used by the CLI and
// the report flow: raw form values in, {A, B, C, best} out.
package analysis
