// Package tui implements the Bubble Tea terminal landing page.
// It shows the HiveCAD pitch, feature cards and roadmap next to a download
// list that fills in once the newest release has been resolved, plus an
// install dialog and keybind-driven downloads of the selected platform build.
package tui
