// Package normalisers provides implementations of the Normaliser interface
// for the supported document formats. Each normaliser knows how to extract
// text content from a specific file extension.
//
// Normalisers are registered with the Registry at startup.
package normalisers
