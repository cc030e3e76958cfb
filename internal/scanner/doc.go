// Package scanner walks a Codeforces problem page line by line and pulls out
// the raw markup fragments a README is built from.
//
// The page has no formal grammar, so the scanner looks for fixed marker
// substrings (class attributes, titles) and moves through a small one-way
// state machine: difficulty, name and statement, sample tests, note. Sample
// tests come in two layouts. Older pages keep every input/output pair on the
// marker line itself; newer ones spread the sample data over the following
// lines. Both are detected and handled.
package scanner
