// Package features turns raw accident form inputs into the fixed-order
// FeatureVector consumed by scorers. The encoding tables defined here are part
// of the public contract: every scorer and every caller decoding a vector must
// use the same tables.
package features
