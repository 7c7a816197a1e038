// Package config loads and validates the YAML study configuration.
//
// Load fills unset fields with defaults and rejects structurally invalid
// parameters (mismatched list lengths, probabilities outside [0, 1)) so
// the numeric pipeline can assume a well-formed study. Watch re-loads the
// file on change for the CLI's -watch mode; a failed reload keeps the
// previous config active.
package config
