package dto

type GeolocateControl struct {
	Enabled            bool `json:"enabled"`
	EnableHighAccuracy bool `json:"enable_high_accuracy"`
	TrackUserLocation  bool `json:"track_user_location"`
}

type MapControls struct {
	Navigation bool             `json:"navigation"`
	Fullscreen bool             `json:"fullscreen"`
	Geolocate  GeolocateControl `json:"geolocate"`
	Geocoder   bool             `json:"geocoder"`
}

type PointLayer struct {
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

type LineLayer struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
	Cap   string  `json:"cap"`
	Join  string  `json:"join"`
}

type MapLayers struct {
	Points PointLayer `json:"points"`
	Lines  LineLayer  `json:"lines"`
}

type MapConfigResponse struct {
	Style         string      `json:"style"`
	Center        Coordinates `json:"center"`
	Zoom          float64     `json:"zoom"`
	AccessToken   string      `json:"access_token,omitempty"`
	Controls      MapControls `json:"controls"`
	Layers        MapLayers   `json:"layers"`
	MaxPathPoints int         `json:"max_path_points"`
}
