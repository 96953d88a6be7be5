package model

// Package model defines domain data structures used across the app: library
// models, their persisted model.json metadata, G-code entries, and status
// enums for background tasks. Structures are designed for direct binding in
// the UI and explicit state transitions.
