package schema

// CatalogArtistTable represents the 'catalog.artist' table
type CatalogArtistTable struct {
	Table      string
	ID         string
	Name       string
	Slug       string
	SpotifyID  string
	Genres     string
	Popularity string
	Followers  string
	ImageURL   string
	Bio        string
	CreatedAt  string
	UpdatedAt  string
	DeletedAt  string
}

// CatalogArtist is the schema definition for catalog.artist
var CatalogArtist = CatalogArtistTable{
	Table:      "catalog.artist",
	ID:         "id",
	Name:       "name",
	Slug:       "slug",
	SpotifyID:  "spotifyid",
	Genres:     "genres",
	Popularity: "popularity",
	Followers:  "followers",
	ImageURL:   "imageurl",
	Bio:        "bio",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
	DeletedAt:  "deletedat",
}
