// Package readme renders a formatted problem as a README stub.
//
// The markdown layout has a heading with the problem name and rating, a small
// table of contents, the problem section (link, tags, statement, samples and
// note) and an empty solution section to fill in. The JSON format writes the
// problem fields for use by other tools.
package readme
