// Package models defines the composed cosmetic views returned by the API.
package models
