package release

// Package release drives the desktop release build: it cleans previous build
// output, runs the external bundler, and compiles the installer, all from a
// YAML descriptor. The heavy lifting stays in the external tools; this
// package only sequences them and maps failures to exit status.
