package platform

// Package platform contains OS integration helpers: filesystem utilities,
// default library locations, and open/reveal actions for model files.
