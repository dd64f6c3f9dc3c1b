// Package scoring estimates the fault scenario distribution for an encoded
// accident. Two strategies satisfy the Scorer interface: Network, a fixed
// weight feed-forward pass, and Heuristic, a closed-form formula. Pluggable
// predictors are wrapped in Fallback so that any failure is answered by the
// heuristic instead of surfacing to the caller.
package scoring
