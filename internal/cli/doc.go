// Package cli implements the command-line interface for cf-readme.
//
// The root command takes one problem reference, loads the layered
// configuration, fetches and formats the problem with the scraper package and
// writes the README either to stdout or into the output directory through the
// storage package. Logs go to stderr as JSON lines.
package cli
