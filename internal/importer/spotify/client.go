// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package spotify imports catalogue data from the Spotify Web API.

The package has two halves: a thin authenticated [Client] over the Web
API (client-credentials flow, automatic token refresh, outbound rate
limiting) and the [Importer], which walks an artist's discography and
persists artists, albums, and songs through the catalogue services.
*/
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/theveganplaylist/server/internal/platform/apperr"
	"github.com/theveganplaylist/server/internal/platform/constants"
)

// # Web API Client

// Client is an authenticated Spotify Web API client.
//
// Tokens from the client-credentials flow are cached until shortly before
// expiry and refreshed transparently. Every outbound call waits on a
// shared rate limiter first.
type Client struct {
	http         *resty.Client
	accountsURL  string
	apiBaseURL   string
	clientID     string
	clientSecret string
	limiter      *rate.Limiter

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// ClientConfig configures a [Client]. URLs default to the public Spotify
// endpoints when blank; tests point them at local servers.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	AccountsURL  string
	APIBaseURL   string
}

// NewClient constructs a Web API [Client].
func NewClient(config ClientConfig) *Client {
	if config.AccountsURL == "" {
		config.AccountsURL = constants.SpotifyAccountsURL
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = constants.SpotifyAPIBaseURL
	}

	return &Client{
		http:         resty.New().SetTimeout(15 * time.Second),
		accountsURL:  config.AccountsURL,
		apiBaseURL:   config.APIBaseURL,
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		limiter:      rate.NewLimiter(rate.Limit(constants.SpotifyRequestsPerSecond), 1),
	}
}

// # Upstream Payloads

// ArtistObject is the Web API artist representation.
type ArtistObject struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int64 `json:"total"`
	} `json:"followers"`
	Images []ImageObject `json:"images"`
}

// ImageObject is one entry of an upstream image set, widest first.
type ImageObject struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AlbumObject is the Web API album representation as returned by the
// artist-albums listing.
type AlbumObject struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	ReleaseDate          string        `json:"release_date"`
	ReleaseDatePrecision string        `json:"release_date_precision"` // "year", "month" or "day"
	Images               []ImageObject `json:"images"`
}

// TrackObject is the Web API track representation as returned by the
// album-tracks listing.
type TrackObject struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
}

// FeaturesObject is the Web API audio-features representation.
type FeaturesObject struct {
	ID               string  `json:"id"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	TimeSignature    int     `json:"time_signature"`
}

// # Operations

/*
Artist fetches a single artist by its Spotify ID.
*/
func (client *Client) Artist(context context.Context, spotifyID string) (*ArtistObject, error) {
	var artist ArtistObject
	if err := client.get(context, "/artists/"+spotifyID, nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

/*
ArtistAlbums fetches the full album and single listing of an artist,
following offset pagination until the upstream reports no further page.
*/
func (client *Client) ArtistAlbums(context context.Context, spotifyID string) ([]AlbumObject, error) {
	var albums []AlbumObject

	for offset := 0; ; offset += constants.SpotifyPageLimit {
		var page struct {
			Items []AlbumObject `json:"items"`
			Next  *string       `json:"next"`
		}

		params := map[string]string{
			"include_groups": "album,single",
			"limit":          strconv.Itoa(constants.SpotifyPageLimit),
			"offset":         strconv.Itoa(offset),
		}
		if err := client.get(context, "/artists/"+spotifyID+"/albums", params, &page); err != nil {
			return nil, err
		}

		albums = append(albums, page.Items...)
		if page.Next == nil || len(page.Items) == 0 {
			return albums, nil
		}
	}
}

/*
AlbumTracks fetches the track listing of an album.
*/
func (client *Client) AlbumTracks(context context.Context, spotifyID string) ([]TrackObject, error) {
	var tracks []TrackObject

	for offset := 0; ; offset += constants.SpotifyPageLimit {
		var page struct {
			Items []TrackObject `json:"items"`
			Next  *string       `json:"next"`
		}

		params := map[string]string{
			"limit":  strconv.Itoa(constants.SpotifyPageLimit),
			"offset": strconv.Itoa(offset),
		}
		if err := client.get(context, "/albums/"+spotifyID+"/tracks", params, &page); err != nil {
			return nil, err
		}

		tracks = append(tracks, page.Items...)
		if page.Next == nil || len(page.Items) == 0 {
			return tracks, nil
		}
	}
}

/*
AudioFeatures fetches the audio features of up to 100 tracks per upstream
call, keyed by track ID. Tracks without an upstream analysis are absent
from the map.
*/
func (client *Client) AudioFeatures(context context.Context, trackIDs []string) (map[string]FeaturesObject, error) {
	const batchSize = 100

	features := make(map[string]FeaturesObject, len(trackIDs))

	for start := 0; start < len(trackIDs); start += batchSize {
		end := start + batchSize
		if end > len(trackIDs) {
			end = len(trackIDs)
		}

		var page struct {
			AudioFeatures []*FeaturesObject `json:"audio_features"`
		}

		params := map[string]string{"ids": strings.Join(trackIDs[start:end], ",")}
		if err := client.get(context, "/audio-features", params, &page); err != nil {
			return nil, err
		}

		// Null entries mark tracks the upstream has no analysis for.
		for _, entry := range page.AudioFeatures {
			if entry != nil {
				features[entry.ID] = *entry
			}
		}
	}

	return features, nil
}

// get performs one authenticated, rate-limited API call and decodes the
// JSON body into target.
func (client *Client) get(context context.Context, path string, params map[string]string, target interface{}) error {
	token, err := client.token(context)
	if err != nil {
		return err
	}

	if err := client.limiter.Wait(context); err != nil {
		return err
	}

	request := client.http.R().
		SetContext(context).
		SetAuthToken(token).
		SetResult(target)
	if params != nil {
		request.SetQueryParams(params)
	}

	response, err := request.Get(client.apiBaseURL + path)
	if err != nil {
		return apperr.Upstream("spotify", err)
	}

	switch {
	case response.StatusCode() == http.StatusNotFound:
		return apperr.NotFound("Spotify resource")
	case response.IsError():
		return apperr.Upstream("spotify",
			fmt.Errorf("spotify: %s returned status %d", path, response.StatusCode()))
	}

	return nil
}

// token returns a valid access token, refreshing through the
// client-credentials flow when the cached one is missing or near expiry.
func (client *Client) token(context context.Context) (string, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.accessToken != "" && time.Now().Before(client.tokenExpiry) {
		return client.accessToken, nil
	}

	if err := client.limiter.Wait(context); err != nil {
		return "", err
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	response, err := client.http.R().
		SetContext(context).
		SetBasicAuth(client.clientID, client.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		SetResult(&grant).
		Post(client.accountsURL + "/api/token")
	if err != nil {
		return "", apperr.Upstream("spotify", err)
	}
	if response.IsError() || grant.AccessToken == "" {
		return "", apperr.Upstream("spotify",
			fmt.Errorf("spotify: token request returned status %d", response.StatusCode()))
	}

	client.accessToken = grant.AccessToken
	client.tokenExpiry = time.Now().
		Add(time.Duration(grant.ExpiresIn) * time.Second).
		Add(-constants.SpotifyTokenSlack)

	return client.accessToken, nil
}
