// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

package spotify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theveganplaylist/server/internal/importer/spotify"
	"github.com/theveganplaylist/server/internal/platform/apperr"
)

// fakeSpotify stands in for both the accounts host and the Web API host.
type fakeSpotify struct {
	tokenRequests int
	apiHandler    http.HandlerFunc
}

func (fake *fakeSpotify) start(t *testing.T) (accounts, api *httptest.Server) {
	t.Helper()

	accounts = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fake.tokenRequests++

		username, password, ok := request.BasicAuth()
		if !ok || username != "id" || password != "secret" {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"access_token": "fake-token",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(accounts.Close)

	// The real Web API declares its content type; resty only unmarshals
	// into SetResult targets when it sees one, so the fake must too.
	api = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		fake.apiHandler(writer, request)
	}))
	t.Cleanup(api.Close)

	return accounts, api
}

func newClient(t *testing.T, fake *fakeSpotify) *spotify.Client {
	t.Helper()

	accounts, api := fake.start(t)
	return spotify.NewClient(spotify.ClientConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AccountsURL:  accounts.URL,
		APIBaseURL:   api.URL,
	})
}

/*
TestClient_Artist verifies the client authenticates through the
client-credentials flow, sends the bearer token on API calls, and decodes
the artist payload.
*/
func TestClient_Artist(t *testing.T) {
	fake := &fakeSpotify{}
	fake.apiHandler = func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer fake-token", request.Header.Get("Authorization"))
		assert.Equal(t, "/artists/abc123", request.URL.Path)

		json.NewEncoder(writer).Encode(map[string]any{
			"id":         "abc123",
			"name":       "Moby",
			"genres":     []string{"electronica", "downtempo"},
			"popularity": 70,
			"followers":  map[string]any{"total": 1500000},
			"images":     []map[string]any{{"url": "https://img/wide.jpg", "width": 640, "height": 640}},
		})
	}

	client := newClient(t, fake)

	artist, err := client.Artist(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Moby", artist.Name)
	assert.Equal(t, []string{"electronica", "downtempo"}, artist.Genres)
	assert.Equal(t, int64(1500000), artist.Followers.Total)
	assert.Equal(t, 70, artist.Popularity)
}

/*
TestClient_TokenReuse verifies the access token is fetched once and reused
across calls instead of hitting the accounts host every time.
*/
func TestClient_TokenReuse(t *testing.T) {
	fake := &fakeSpotify{}
	fake.apiHandler = func(writer http.ResponseWriter, request *http.Request) {
		json.NewEncoder(writer).Encode(map[string]any{"id": "x", "name": "X"})
	}

	client := newClient(t, fake)

	for i := 0; i < 3; i++ {
		_, err := client.Artist(context.Background(), "x")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, fake.tokenRequests)
}

/*
TestClient_ArtistAlbums_Pagination verifies the client follows upstream
offset pagination and concatenates all pages.
*/
func TestClient_ArtistAlbums_Pagination(t *testing.T) {
	fake := &fakeSpotify{}
	fake.apiHandler = func(writer http.ResponseWriter, request *http.Request) {
		next := "more"
		page := map[string]any{
			"items": []map[string]any{{"id": "al-" + request.URL.Query().Get("offset"), "name": "A"}},
			"next":  &next,
		}
		if request.URL.Query().Get("offset") != "0" {
			page["next"] = nil
		}
		json.NewEncoder(writer).Encode(page)
	}

	client := newClient(t, fake)

	albums, err := client.ArtistAlbums(context.Background(), "abc")
	require.NoError(t, err)

	require.Len(t, albums, 2)
	assert.Equal(t, "al-0", albums[0].ID)
	assert.Equal(t, "al-50", albums[1].ID)
}

/*
TestClient_AudioFeatures_NullEntries verifies null analysis entries are
dropped rather than yielding zero-valued features.
*/
func TestClient_AudioFeatures_NullEntries(t *testing.T) {
	fake := &fakeSpotify{}
	fake.apiHandler = func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "t1,t2", request.URL.Query().Get("ids"))

		json.NewEncoder(writer).Encode(map[string]any{
			"audio_features": []any{
				map[string]any{"id": "t1", "energy": 0.8, "tempo": 120.0},
				nil,
			},
		})
	}

	client := newClient(t, fake)

	features, err := client.AudioFeatures(context.Background(), []string{"t1", "t2"})
	require.NoError(t, err)

	require.Len(t, features, 1)
	assert.Equal(t, 0.8, features["t1"].Energy)
	_, hasMissing := features["t2"]
	assert.False(t, hasMissing)
}

/*
TestClient_ErrorMapping verifies upstream 404s map to a not-found error
and other failure statuses to an upstream error.
*/
func TestClient_ErrorMapping(t *testing.T) {
	fake := &fakeSpotify{}
	fake.apiHandler = func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/artists/missing":
			writer.WriteHeader(http.StatusNotFound)
		default:
			writer.WriteHeader(http.StatusInternalServerError)
		}
	}

	client := newClient(t, fake)

	_, err := client.Artist(context.Background(), "missing")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)

	_, err = client.Artist(context.Background(), "broken")
	appError = apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
}
