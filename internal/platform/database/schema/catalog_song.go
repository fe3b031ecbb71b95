package schema

// CatalogSongTable represents the 'catalog.song' table
type CatalogSongTable struct {
	Table               string
	ID                  string
	Title               string
	Slug                string
	SpotifyID           string
	AlbumID             string
	Genre               string
	ParentGenre         string
	VeganFocus          string
	AnimalCategory      string
	AdvocacyStyle       string
	AdvocacyIssues      string
	LyricalExplicitness string
	Energy              string
	Danceability        string
	Valence             string
	Acousticness        string
	Instrumentalness    string
	Liveness            string
	Speechiness         string
	Tempo               string
	Loudness            string
	Key                 string
	Mode                string
	TimeSignature       string
	Popularity          string
	Review              string
	YouTubeID           string
	Featured            string
	CreatedAt           string
	UpdatedAt           string
	DeletedAt           string
}

// CatalogSong is the schema definition for catalog.song
var CatalogSong = CatalogSongTable{
	Table:               "catalog.song",
	ID:                  "id",
	Title:               "title",
	Slug:                "slug",
	SpotifyID:           "spotifyid",
	AlbumID:             "albumid",
	Genre:               "genre",
	ParentGenre:         "parentgenre",
	VeganFocus:          "veganfocus",
	AnimalCategory:      "animalcategory",
	AdvocacyStyle:       "advocacystyle",
	AdvocacyIssues:      "advocacyissues",
	LyricalExplicitness: "lyricalexplicitness",
	Energy:              "energy",
	Danceability:        "danceability",
	Valence:             "valence",
	Acousticness:        "acousticness",
	Instrumentalness:    "instrumentalness",
	Liveness:            "liveness",
	Speechiness:         "speechiness",
	Tempo:               "tempo",
	Loudness:            "loudness",
	Key:                 "key",
	Mode:                "mode",
	TimeSignature:       "timesignature",
	Popularity:          "popularity",
	Review:              "review",
	YouTubeID:           "youtubeid",
	Featured:            "featured",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
	DeletedAt:           "deletedat",
}

// FacetColumn maps a facet name (as used in query parameters) to its column.
// Unknown names return an empty string; callers must treat that as "no filter".
func (t CatalogSongTable) FacetColumn(facet string) string {
	switch facet {
	case "vegan_focus":
		return t.VeganFocus
	case "animal_category":
		return t.AnimalCategory
	case "advocacy_style":
		return t.AdvocacyStyle
	case "advocacy_issues":
		return t.AdvocacyIssues
	case "lyrical_explicitness":
		return t.LyricalExplicitness
	}
	return ""
}
