// Package archive builds the zip container holding a Typst project.
//
// A Builder collects entries in memory and either finalizes them into one
// complete archive or is discarded; a partially written archive is never
// returned. Entry timestamps are fixed so identical entries always produce
// identical bytes.
package archive
