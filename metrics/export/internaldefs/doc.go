// Package internaldefs holds the shared metric name table for the authkit
// exporters. It exists so the Prometheus and OpenTelemetry exporters
// cannot drift apart on names, help strings, or bucket layout.
//
// Nothing outside metrics/export should import this package.
package internaldefs
