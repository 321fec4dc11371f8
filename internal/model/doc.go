// Package model defines the data structures shared by the geotags packages.
//
// This package contains the following main types:
//   - ImageRecord: One geotagged image, the unit of export
//   - Skip: Why a candidate file produced no record
//   - Outcome: The per-file result, either a record or a skip
//   - Extraction: The accumulated result of one scan
//
// The models are serializable to JSON for report output.
package model
