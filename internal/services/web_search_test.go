package services

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerpAPISearch_Unconfigured(t *testing.T) {
	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	client := NewSerpAPIClient("", logger)

	outcome := client.Search(context.Background(), "anything", 3)

	assert.Equal(t, SearchStatusUnconfigured, outcome.Status)
	assert.Empty(t, outcome.Results)
	assert.NoError(t, outcome.Err)
}

func TestSerpAPISearch_ParsesOrganicResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "google", r.URL.Query().Get("engine"))
		assert.Equal(t, "golang workflows", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"organic_results": [
				{"title": "First", "link": "https://a.example", "snippet": "first snippet"},
				{"title": "Second", "link": "https://b.example", "snippet": "second snippet"},
				{"title": "Third", "link": "https://c.example", "snippet": "third snippet"},
				{"title": "Fourth", "link": "https://d.example", "snippet": "fourth snippet"}
			]
		}`))
	}))
	defer server.Close()

	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	client := NewSerpAPIClient("test-key", logger)
	client.baseURL = server.URL

	outcome := client.Search(context.Background(), "golang workflows", 3)

	assert.Equal(t, SearchStatusOK, outcome.Status)
	assert.Len(t, outcome.Results, 3)
	assert.Equal(t, "First", outcome.Results[0].Title)
	assert.Equal(t, "first snippet", outcome.Results[0].Snippet)
}

func TestSerpAPISearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	client := NewSerpAPIClient("test-key", logger)
	client.baseURL = server.URL

	outcome := client.Search(context.Background(), "query", 3)

	assert.Equal(t, SearchStatusFailed, outcome.Status)
	assert.Error(t, outcome.Err)
}

func TestSerpAPISearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	client := NewSerpAPIClient("test-key", logger)
	client.baseURL = server.URL

	outcome := client.Search(context.Background(), "query", 3)

	assert.Equal(t, SearchStatusFailed, outcome.Status)
	assert.Error(t, outcome.Err)
}

func TestSerpAPISearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic_results": []}`))
	}))
	defer server.Close()

	logger := log.New(os.Stdout, "[TEST] ", log.LstdFlags)
	client := NewSerpAPIClient("test-key", logger)
	client.baseURL = server.URL

	outcome := client.Search(context.Background(), "query", 3)

	assert.Equal(t, SearchStatusOK, outcome.Status)
	assert.Empty(t, outcome.Results)
}
