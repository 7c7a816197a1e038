// Package gate evaluates threshold conditions against finished sweep
// results. Conditions are "field operator value" strings from the config
// (condition.go lists the fields); a critical violation makes the CLI
// exit non-zero, which turns a study into a regression gate for labeling
// process changes.
package gate
