// Package problem turns raw scanner fragments into the formatted pieces of a
// README: heading, tags, statement, examples and note.
//
// It also resolves short problem references such as "1694A" into page URLs.
package problem
