// Package convert rewrites the markup of a problem page fragment into
// markdown with an ordered table of regular-expression substitutions.
//
// Rules are plain data: a pattern, a replacement and a precedence. A
// Converter sorts its rules once by precedence, so stage order (LaTeX, then
// tags, then special characters) and the order inside a stage are both
// decided in one place. LaTeX rules take their precedence from the command
// length, which keeps a longer command such as \leq ahead of its prefix \le.
package convert
