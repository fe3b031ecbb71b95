// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package spotify

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/theveganplaylist/server/internal/catalog/album"
	"github.com/theveganplaylist/server/internal/catalog/artist"
	"github.com/theveganplaylist/server/internal/catalog/song"
	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/pkg/pointer"
	"github.com/theveganplaylist/server/pkg/slice"
)

// # Discography Import

// Importer walks an artist's Spotify discography and persists it through
// the catalogue services.
//
// Imports are idempotent: every upstream object is looked up by its
// Spotify ID first and only created when absent, so re-running an import
// picks up new releases without duplicating existing rows.
type Importer struct {
	client    *Client
	artists   *artist.Service
	albums    *album.Service
	songs     *song.Service
	hierarchy *genre.Hierarchy
	logger    *slog.Logger
}

// NewImporter constructs an [Importer].
func NewImporter(
	client *Client,
	artists *artist.Service,
	albums *album.Service,
	songs *song.Service,
	hierarchy *genre.Hierarchy,
	logger *slog.Logger,
) *Importer {
	return &Importer{
		client:    client,
		artists:   artists,
		albums:    albums,
		songs:     songs,
		hierarchy: hierarchy,
		logger:    logger,
	}
}

// Report summarizes one import run.
type Report struct {
	ArtistID      string `json:"artist_id"`
	ArtistName    string `json:"artist_name"`
	ArtistCreated bool   `json:"artist_created"`
	AlbumsCreated int    `json:"albums_created"`
	SongsCreated  int    `json:"songs_created"`
	SongsSkipped  int    `json:"songs_skipped"`
}

/*
ImportArtist imports one artist and their full discography by Spotify
artist ID.

The artist's raw genre tags are classified once and the resulting genre is
cached on every imported song; the parent genre is derived from it by the
song service. Tracks the artist does not perform on (e.g. split releases)
are skipped.
*/
func (importer *Importer) ImportArtist(context context.Context, spotifyArtistID string) (*Report, error) {
	artistEntity, created, err := importer.ensureArtist(context, spotifyArtistID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ArtistID:      artistEntity.ID,
		ArtistName:    artistEntity.Name,
		ArtistCreated: created,
	}

	classification := importer.hierarchy.Classify(artistEntity.Genres)

	upstreamAlbums, err := importer.client.ArtistAlbums(context, spotifyArtistID)
	if err != nil {
		return nil, err
	}

	for _, upstreamAlbum := range upstreamAlbums {
		if err := importer.importAlbum(context, upstreamAlbum, spotifyArtistID, artistEntity.ID, classification, report); err != nil {
			return nil, err
		}
	}

	importer.logger.Info("spotify_import_completed",
		slog.String("artist_id", report.ArtistID),
		slog.String("artist_name", report.ArtistName),
		slog.Int("albums_created", report.AlbumsCreated),
		slog.Int("songs_created", report.SongsCreated),
		slog.Int("songs_skipped", report.SongsSkipped),
	)

	return report, nil
}

// ensureArtist returns the already-imported artist or fetches and creates
// it. The raw upstream tag list is stored untouched and in upstream
// order.
func (importer *Importer) ensureArtist(context context.Context, spotifyArtistID string) (*artist.Artist, bool, error) {
	existing, err := importer.artists.FindBySpotifyID(context, spotifyArtistID)
	if err == nil {
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	upstream, err := importer.client.Artist(context, spotifyArtistID)
	if err != nil {
		return nil, false, err
	}

	entity := &artist.Artist{
		Name:       upstream.Name,
		SpotifyID:  pointer.To(upstream.ID),
		Genres:     upstream.Genres,
		Popularity: upstream.Popularity,
		Followers:  upstream.Followers.Total,
		ImageURL:   firstImage(upstream.Images),
	}
	if err := importer.artists.Create(context, entity); err != nil {
		return nil, false, err
	}

	return entity, true, nil
}

func (importer *Importer) importAlbum(
	context context.Context,
	upstreamAlbum AlbumObject,
	spotifyArtistID, artistID string,
	classification genre.Classification,
	report *Report,
) error {
	albumEntity, err := importer.albums.FindBySpotifyID(context, upstreamAlbum.ID)
	if isNotFound(err) {
		albumEntity = &album.Album{
			Title:       upstreamAlbum.Name,
			SpotifyID:   pointer.To(upstreamAlbum.ID),
			ReleaseDate: parseReleaseDate(upstreamAlbum.ReleaseDate, upstreamAlbum.ReleaseDatePrecision),
			ImageURL:    firstImage(upstreamAlbum.Images),
		}
		if err := importer.albums.Create(context, albumEntity); err != nil {
			return err
		}
		report.AlbumsCreated++
	} else if err != nil {
		return err
	}

	tracks, err := importer.client.AlbumTracks(context, upstreamAlbum.ID)
	if err != nil {
		return err
	}

	performed := slice.Filter(tracks, func(track TrackObject) bool {
		return performedBy(track, spotifyArtistID)
	})
	if len(performed) == 0 {
		return nil
	}

	trackIDs := slice.Map(performed, func(track TrackObject) string { return track.ID })

	features, err := importer.client.AudioFeatures(context, trackIDs)
	if err != nil {
		return err
	}

	for _, track := range performed {
		_, err := importer.songs.FindBySpotifyID(context, track.ID)
		if err == nil {
			report.SongsSkipped++
			continue
		}
		if !isNotFound(err) {
			return err
		}

		songEntity := &song.Song{
			Title:     track.Name,
			SpotifyID: pointer.To(track.ID),
			AlbumID:   pointer.To(albumEntity.ID),
			Genre:     classification.Genre,
			ArtistIDs: []string{artistID},
		}
		if analysis, ok := features[track.ID]; ok {
			applyFeatures(songEntity, analysis)
		}

		if err := importer.songs.Create(context, songEntity); err != nil {
			return err
		}
		report.SongsCreated++
	}

	return nil
}

// applyFeatures copies an upstream audio analysis onto a song.
func applyFeatures(entity *song.Song, analysis FeaturesObject) {
	entity.Energy = pointer.To(analysis.Energy)
	entity.Danceability = pointer.To(analysis.Danceability)
	entity.Valence = pointer.To(analysis.Valence)
	entity.Acousticness = pointer.To(analysis.Acousticness)
	entity.Instrumentalness = pointer.To(analysis.Instrumentalness)
	entity.Liveness = pointer.To(analysis.Liveness)
	entity.Speechiness = pointer.To(analysis.Speechiness)
	entity.Tempo = pointer.To(analysis.Tempo)
	entity.Loudness = pointer.To(analysis.Loudness)
	entity.Key = pointer.To(analysis.Key)
	entity.Mode = pointer.To(analysis.Mode)
	entity.TimeSignature = pointer.To(analysis.TimeSignature)
}

// performedBy reports whether the artist appears in the track credits.
func performedBy(track TrackObject, spotifyArtistID string) bool {
	for _, credit := range track.Artists {
		if credit.ID == spotifyArtistID {
			return true
		}
	}
	return false
}

// parseReleaseDate interprets an upstream release date at its declared
// precision; year- and month-precision dates resolve to their first day.
func parseReleaseDate(value, precision string) *time.Time {
	layout := "2006-01-02"
	switch precision {
	case "year":
		layout = "2006"
	case "month":
		layout = "2006-01"
	}

	parsed, err := time.Parse(layout, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// firstImage picks the first (widest) upstream image URL.
func firstImage(images []ImageObject) *string {
	if len(images) == 0 {
		return nil
	}
	return pointer.To(images[0].URL)
}

func isNotFound(err error) bool {
	appError := apperr.As(err)
	return appError != nil && appError.HTTPStatus == http.StatusNotFound
}
