// Package main hosts the bilimux CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, builds the logger, and
// hands download folders to the compiler. Listing, compiling, environment
// checks, and configuration scaffolding each live in their own command file;
// the pipeline itself lives in the internal packages.
package main
