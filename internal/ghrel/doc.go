// Package ghrel wraps the GitHub Releases API for the CLI, web server and TUI.
// It lists a repository's releases through go-github, builds the public
// releases page URL, and streams release assets to disk atomically.
package ghrel
