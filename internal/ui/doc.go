package ui

// Package ui implements the Fyne desktop interface: the gallery window with
// model cards, dialogs for creating and editing model packages, settings and
// first-run onboarding, and the interactive 3D preview.
