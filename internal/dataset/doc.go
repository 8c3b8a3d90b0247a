// Package dataset provides JSON persistence and remote loading for remate
// datasets.
//
// Dataset files are written in the envelope form
// {"updated_at": ..., "records": [...]}; both the envelope and the legacy
// bare-array form are accepted on read. Filter presets are stored as a
// single presets.json under the data directory.
package dataset
