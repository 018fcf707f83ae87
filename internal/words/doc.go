// Package words loads and persists the list of translation pairs a learner
// still has to master. The list lives in a flat tabular file (CSV, or XLSX
// via excelize) with a two-column header; a pristine source file seeds it
// whenever no usable progress file exists.
package words
