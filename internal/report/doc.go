// Package report renders the progress of a bootstrap run.
//
// The text reporter prints the classic banners before each step, the
// virtual-environment path, and the usage hints. Banners are styled with
// lipgloss only when stdout is a colour-capable terminal; the path and
// hint lines are always written byte-for-byte so they can be copied or
// grepped. The JSON reporter stays silent until the run ends and then
// writes one document describing the whole model.Report.
package report
