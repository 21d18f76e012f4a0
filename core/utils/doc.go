// Package utils provides scalar coercion helpers shared across the pipeline.
//
// Fetched records are loosely typed (JSON scalars), so dedupe-key coercion,
// CSV output, and parquet encoding all need one fixed stringification rule.
// Keeping the rule here, in one place, is what makes identity assignment
// stable across runs.
package utils
