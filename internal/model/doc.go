package model

// Package model defines the data structures shared across the app: converted
// records, the rendered view projected from them, and the events the host
// publishes while converting dropped torrent files.
