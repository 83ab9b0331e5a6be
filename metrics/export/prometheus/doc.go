// Package prometheus exposes authkit metrics in Prometheus text
// exposition format without importing the Prometheus client library.
// Mount Handler on any mux, or call Render directly.
package prometheus
