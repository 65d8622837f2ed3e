// Package file provides the file-based configuration adapter.
//
// Settings are layered: built-in defaults, then the TOML config file,
// then environment variables. A missing file at the default location is
// not an error; a missing file that was asked for explicitly is.
package file
