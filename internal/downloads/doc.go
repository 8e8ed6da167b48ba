// Package downloads resolves the newest HiveCAD release into per-platform
// download links and holds the result for the views that render it.
package downloads
