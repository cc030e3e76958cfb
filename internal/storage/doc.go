// Package storage saves generated README files.
//
// Files are written into an output directory that is created on demand; a
// leading "~/" is expanded to the user's home directory. Existing files are
// left alone unless the caller asks to overwrite them, in which case Save
// truncates and rewrites the file. The default file name is README.md.
package storage
