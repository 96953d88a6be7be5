package gcode

// Package gcode extracts print metadata from sliced G-code: material, colour
// and estimated print time from slicer header comments (Cura, PrusaSlicer),
// plus a filename-convention fallback for files exported without headers.
