package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient - gerçek bekleme yerine süreleri kaydeden istemci
func testClient(baseURL string) (*Client, *[]time.Duration) {
	c := New(baseURL)
	var slept []time.Duration
	c.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}
	return c, &slept
}

func TestDoJSON_RetriesOn504ThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c, slept := testClient(srv.URL)
	raw, err := c.doJSON(context.Background(), http.MethodGet, "/Data/all", nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "ilk deneme + 2 tekrar")
	// N. tekrardan önce backoff × N beklenir
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestDoJSON_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("bakimdayiz"))
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL)
	_, err := c.doJSON(context.Background(), http.MethodGet, "/Data/all", nil)

	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "bakimdayiz", apiErr.Body)
}

func TestDoJSON_NonRetryableStatusFailsImmediately(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Tutar gecersiz"))
	}))
	defer srv.Close()

	c, slept := testClient(srv.URL)
	_, err := c.doJSON(context.Background(), http.MethodPost, "/Personel", map[string]any{"AdSoyad": "Ali"})

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "400 tekrar denenmez")
	assert.Empty(t, *slept)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Girdiğiniz alanları kontrol edin", apiErr.UserMessage())
}

func TestDoJSON_NoContentReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL)
	raw, err := c.doJSON(context.Background(), http.MethodDelete, "/Personel/5", nil)

	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDoJSON_SendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"Id":7}`))
	}))
	defer srv.Close()

	c, _ := testClient(srv.URL)
	raw, err := c.doJSON(context.Background(), http.MethodPost, "/Personel", map[string]any{"AdSoyad": "Veli"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"Id":7}`, string(raw))
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Veli", gotBody["AdSoyad"])
}

func TestIsTimeoutErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil hata", nil, false},
		{"TimeoutError mesajı", errors.New("TimeoutError: istek zaman asimina ugradi"), true},
		{"timeout mesajı", errors.New("dial tcp: i/o timeout"), true},
		{"alakasız hata", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTimeoutErr(tt.err))
		})
	}
}

func TestFetchAll_HandlesCasingVariants(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name: "camelCase koleksiyon adları",
			payload: `{
				"personnel": [{"Id": 1, "AdSoyad": "Ali"}],
				"customers": [{"Id": 2}],
				"customerJobs": [{"Id": 3}],
				"jobEarnings": [{"MusteriIsId": 3, "PersonelId": 1, "Odeme": 500}]
			}`,
		},
		{
			name: "PascalCase koleksiyon adları",
			payload: `{
				"Personnel": [{"Id": 1, "AdSoyad": "Ali"}],
				"Customers": [{"Id": 2}],
				"CustomerJobs": [{"Id": 3}],
				"Hakedisler": [{"MusteriIsId": 3, "PersonelId": 1, "Odeme": 500}]
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/Data/all", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c, _ := testClient(srv.URL)
			ds, err := c.FetchAll(context.Background())

			require.NoError(t, err)
			require.Len(t, ds.Personeller, 1)
			assert.Equal(t, "Ali", ds.Personeller[0]["AdSoyad"])
			assert.Len(t, ds.Musteriler, 1)
			assert.Len(t, ds.Isler, 1)
			assert.Len(t, ds.Hakedisler, 1)
		})
	}
}
