// Package file persists CLI configuration as a TOML file in the
// corpus config directory.
package file
