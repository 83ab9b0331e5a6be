// Package otel exports authkit metrics through the OpenTelemetry metric
// API as observable instruments. Histogram buckets surface as cumulative
// gauges because the core keeps fixed-bound integer buckets rather than
// OTel-native histograms.
package otel
