// Package config loads cf-readme settings.
//
// Values are layered with viper: built-in defaults, then an optional YAML
// file (.cf-readme.yaml in the working directory or $HOME, or the file named
// by --config), then CFREADME_* environment variables, then command-line
// flags that were explicitly set.
package config
