// Package models defines the package listing payloads.
package models
