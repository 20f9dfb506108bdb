package clients

// RadarrTag maps a human label to the numeric identifier Radarr uses on
// movie records.
type RadarrTag struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// RadarrMovie represents a movie in Radarr. Added is kept as the raw string
// from the API: Radarr timestamps sometimes lack a UTC offset, and a value
// that fails to parse must only skip that one movie, so parsing is left to
// the selector.
type RadarrMovie struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	Path       string `json:"path"`
	Added      string `json:"added"`
	Tags       []int  `json:"tags"`
	TmdbID     int    `json:"tmdbId"`
	SizeOnDisk int64  `json:"sizeOnDisk"`
	HasFile    bool   `json:"hasFile"`
}

// RadarrSystemStatus is the response from the system status endpoint, used
// by TestConnection.
type RadarrSystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}

// ImportExclusion is the payload for registering an import-list exclusion,
// preventing Radarr from re-importing a deleted title.
type ImportExclusion struct {
	TmdbID     int    `json:"tmdbId"`
	MovieTitle string `json:"movieTitle"`
	MovieYear  int    `json:"movieYear"`
}
