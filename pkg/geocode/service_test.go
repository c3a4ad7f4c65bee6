package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		matches     []serviceLocation
		expected    *Location
		expectError bool
	}{
		{
			name:   "first match wins",
			status: http.StatusOK,
			matches: []serviceLocation{
				{ID: 1, Prefecture: "東京都", Municipality: "千代田区", Address1: "丸の内", Latitude: 35.681236, Longitude: 139.767125},
				{ID: 2, Prefecture: "東京都", Municipality: "中央区", Latitude: 35.67, Longitude: 139.77},
			},
			expected: &Location{Address: "東京都 千代田区 丸の内", Latitude: 35.681236, Longitude: 139.767125},
		},
		{
			name:    "no matches",
			status:  http.StatusOK,
			matches: []serviceLocation{},
		},
		{
			name:        "bad request",
			status:      http.StatusBadRequest,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/geocode", r.URL.Path)
				assert.Equal(t, "東京都千代田区丸の内", r.URL.Query().Get("q"))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					json.NewEncoder(w).Encode(tt.matches)
				} else {
					w.Write([]byte(`{"error":"missing required query parameter 'q'"}`))
				}
			}))
			defer srv.Close()

			g, err := New(ProviderService, WithBaseUrl(srv.URL))
			require.NoError(t, err)
			loc, err := g.Resolve(context.Background(), "東京都千代田区丸の内")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("google")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNew_GazetteerNeedsPath(t *testing.T) {
	_, err := New(ProviderGazetteer)
	assert.Error(t, err)
}
