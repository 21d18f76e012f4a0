// Package arcgis provides a client for pulling complete result sets from an
// ArcGIS feature service layer.
//
// The layer is queried in GeoJSON form with offset pagination: pages of a
// fixed size are requested until a page comes back short, at which point the
// result set is complete. Requests are retried on transient failures and each
// page request is bounded by a configurable timeout, so a fetch can never
// hang indefinitely.
//
// Fetch failures are fatal to the caller's run by design: a partially fetched
// collection must not be persisted as a snapshot or merged into a master
// table.
package arcgis
