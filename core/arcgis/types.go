package arcgis

import "encoding/json"

// Feature is a single GeoJSON feature returned by the service.
type Feature struct {
	// Type is the GeoJSON object type, always "Feature".
	Type string `json:"type"`
	// Properties holds the attribute values of the feature.
	Properties map[string]any `json:"properties"`
	// Geometry is the raw GeoJSON geometry object. It is kept unparsed; the
	// flattener canonicalizes it for hashing without interpreting it.
	Geometry json.RawMessage `json:"geometry"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	// Type is the GeoJSON object type, always "FeatureCollection".
	Type string `json:"type"`
	// Features are the collected features across all fetched pages.
	Features []Feature `json:"features"`
}

// queryError mirrors the error envelope ArcGIS returns with a 200 status.
type queryError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// queryResponse is one page of a layer query in GeoJSON form.
type queryResponse struct {
	Features []Feature   `json:"features"`
	Error    *queryError `json:"error"`
}
