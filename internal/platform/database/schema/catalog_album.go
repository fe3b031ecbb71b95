package schema

// CatalogAlbumTable represents the 'catalog.album' table
type CatalogAlbumTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	SpotifyID   string
	ReleaseDate string
	ImageURL    string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogAlbum is the schema definition for catalog.album
var CatalogAlbum = CatalogAlbumTable{
	Table:       "catalog.album",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	SpotifyID:   "spotifyid",
	ReleaseDate: "releasedate",
	ImageURL:    "imageurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}
