// Package report exports extraction results.
//
// This package contains writers for different output formats:
//   - CSVWriter: the coordinates file, one row per geotagged image
//   - JSONWriter: the same rows as a JSON array for tool integration
//   - MarkdownWriter: a table plus a run summary for sharing
//   - SkipWriter: human-readable list of files that yielded no record
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably. WriteFile picks a writer by format name and replaces
// the destination file.
package report
