package frontend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

func TestClient_ListArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/articles", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"count": 2,
			"results": []map[string]interface{}{
				{"id": 1, "title": "First"},
				{"id": 2, "title": "Second"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	articles, err := client.ListArticles(context.Background())

	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "First", articles[0].Title)
}

func TestClient_CreateComment_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.EqualValues(t, 10, payload["article_id"])
		assert.Equal(t, "nice", payload["content"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 1})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.CreateComment(context.Background(), "token-123", 10, "nice")

	assert.NoError(t, err)
}

func TestClient_DecodesStructuredErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":       "Article not found",
			"detail":      "article_not_found",
			"status_code": 404,
			"path":        r.URL.Path,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetArticle(context.Background(), 404)

	var apiErr *domain.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Article not found", apiErr.Detail)
	assert.Equal(t, "article_not_found", apiErr.Code)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}

func TestClient_NonJSONErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetArticle(context.Background(), 1)

	var apiErr *domain.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/token", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"access": "a", "refresh": "r"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	pair, err := client.Login(context.Background(), "maria", "s3cretpass")

	require.NoError(t, err)
	assert.Equal(t, "a", pair.Access)
	assert.Equal(t, "r", pair.Refresh)
}
