// Package exporter serializes outlier records into per-input-file
// reports. The report format follows the input: CSV in, CSV report out;
// XLSX in, XLSX report out. Columns are fixed and a file with no
// outliers still gets a header-only report.
package exporter
