package schema

// CatalogSongArtistTable represents the 'catalog.songartist' junction table
type CatalogSongArtistTable struct {
	Table    string
	SongID   string
	ArtistID string
	Position string
}

// CatalogSongArtist is the schema definition for catalog.songartist
var CatalogSongArtist = CatalogSongArtistTable{
	Table:    "catalog.songartist",
	SongID:   "songid",
	ArtistID: "artistid",
	Position: "position",
}
