// Package ui holds terminal color themes shared by the CLI output paths.
package ui
