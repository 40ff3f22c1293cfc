package scanner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ScanBatch(t *testing.T) {
	batch := []File{
		{Name: "a.pdf", Data: []byte("clean bytes")},
		{Name: "b.pdf", Data: []byte("dirty bytes")},
	}

	t.Run("verdicts returned in order", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/scan", r.URL.Path)

			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Len(t, r.MultipartForm.File, 2)

			json.NewEncoder(w).Encode(scanResponse{Results: []Verdict{
				{Clean: true, Threats: []string{}},
				{Clean: false, Threats: []string{"Eicar-Test-Signature"}},
			}})
		}))
		defer srv.Close()

		verdicts, err := NewClient(srv.URL, time.Second).ScanBatch(context.Background(), batch)
		require.NoError(t, err)
		require.Len(t, verdicts, 2)
		assert.True(t, verdicts[0].Clean)
		assert.False(t, verdicts[1].Clean)
		assert.Equal(t, []string{"Eicar-Test-Signature"}, verdicts[1].Threats)
	})

	t.Run("service error maps to ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).ScanBatch(context.Background(), batch)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("connection failure maps to ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // closed before use

		_, err := NewClient(srv.URL, time.Second).ScanBatch(context.Background(), batch)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed response maps to ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).ScanBatch(context.Background(), batch)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("verdict count mismatch maps to ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(scanResponse{Results: []Verdict{{Clean: true}}})
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, time.Second).ScanBatch(context.Background(), batch)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
		}))
		defer srv.Close()
		defer close(block)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := NewClient(srv.URL, time.Second).ScanBatch(ctx, batch)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
