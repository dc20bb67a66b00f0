// Package config persists user settings through fyne preferences.
package config
