// Package cmd defines the Cobra command tree for the application.
// The root command opens the terminal landing page by default, and subcommands
// serve the web landing page or expose the release resolver non-interactively.
package cmd
