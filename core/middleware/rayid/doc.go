// Package rayid tags each request with a ray id for log correlation.
package rayid
