// Package auth protects the API with a static key.
package auth
