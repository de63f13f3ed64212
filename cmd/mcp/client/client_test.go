package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchBadges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/badges", r.URL.Path)
		assert.Equal(t, "dupont jean", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"data":[{"first_name":"Jean","last_name":"Dupont"}],` +
			`"metadata":{"total":1,"page":2,"page_size":50,"stage":"permutation","suggestions":[]}}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL+"/").SearchBadges(t.Context(), "dupont jean", 2, 0)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Dupont", res.Data[0].LastName)
	assert.Equal(t, "permutation", res.Metadata.Stage)
}

func TestClient_GetBadge(t *testing.T) {
	cases := []struct {
		name       string
		badgeID    string
		policy     string
		status     int
		body       string
		wantPath   string
		wantPolicy string
		wantErr    error
	}{
		{
			name:     "found",
			badgeID:  "EXT 1",
			status:   http.StatusOK,
			body:     `{"data":{"badge":{"last_name":"Dupont"},"status":{"active":true}},"formatted":"Nom complet: Jean Dupont"}`,
			wantPath: "/v1/badges/EXT%201",
		},
		{
			name:       "with_policy",
			badgeID:    "1001",
			policy:     "aggregate",
			status:     http.StatusOK,
			body:       `{"data":{"badge":{"last_name":"Dupont"},"status":{"active":true}}}`,
			wantPath:   "/v1/badges/1001",
			wantPolicy: "aggregate",
		},
		{
			name:     "not_found",
			badgeID:  "nope",
			status:   http.StatusNotFound,
			wantPath: "/v1/badges/nope",
			wantErr:  ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.wantPath, r.URL.EscapedPath())
				assert.Equal(t, tc.wantPolicy, r.URL.Query().Get("policy"))
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			detail, err := NewClient(srv.URL).GetBadge(t.Context(), tc.badgeID, tc.policy)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Dupont", detail.Data.Badge.LastName)
			assert.True(t, detail.Data.Status.Active)
		})
	}
}

func TestClient_Ask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Message string `json:"message"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Nombre de VIP", req.Message)

		_, _ = w.Write([]byte(`{"reply":"Nombre total de VIP : 0","intent":"vip_list"}`))
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).Ask(t.Context(), "Nombre de VIP")
	require.NoError(t, err)
	assert.Equal(t, "Nombre total de VIP : 0", reply.Reply)
	assert.Equal(t, "vip_list", reply.Intent)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Stats(t.Context())
	assert.ErrorContains(t, err, "status 503")
}
