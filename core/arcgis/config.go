package arcgis

// Config holds configuration for the upstream ArcGIS feature service layer.
type Config struct {
	// LayerURL is the base URL of the feature service layer to query.
	LayerURL string `mapstructure:"layer_url" default:"https://alphagis.alpharetta.ga.us/arcgis/rest/services/OpenData/OpenData_PS_Full/FeatureServer/1"`
	// Where is the attribute filter applied to the query.
	Where string `mapstructure:"where" default:"1=1"`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"2000"`
	// OutSR is the spatial reference of returned geometries.
	OutSR int `mapstructure:"out_sr" default:"4326"`
	// TimeoutSeconds bounds each page request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// RetryMax is the number of retries per page request.
	RetryMax int `mapstructure:"retry_max" default:"3"`
}
