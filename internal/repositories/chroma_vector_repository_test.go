package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-stack/internal/db"
	"genai-stack/internal/models"
)

// fakeChroma serves just enough of the ChromaDB v2 API for repository tests
type fakeChroma struct {
	collections map[string]string // name -> id
	added       map[string]interface{}
	queried     map[string]interface{}
}

func newFakeChroma() *fakeChroma {
	return &fakeChroma{collections: map[string]string{}}
}

func (f *fakeChroma) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v2/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	prefix := "/api/v2/tenants/default_tenant/databases/default_database/collections"
	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		json.NewDecoder(r.Body).Decode(&payload)
		name := payload["name"].(string)
		id := "id-" + name
		f.collections[name] = id
		json.NewEncoder(w).Encode(db.Collection{ID: id, Name: name})
	})
	mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, prefix+"/")
		parts := strings.Split(rest, "/")

		switch {
		case len(parts) == 1 && r.Method == http.MethodGet:
			name := parts[0]
			id, ok := f.collections[name]
			if !ok {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(db.Collection{ID: id, Name: name})
		case len(parts) == 1 && r.Method == http.MethodDelete:
			delete(f.collections, parts[0])
			w.WriteHeader(http.StatusOK)
		case len(parts) == 2 && parts[1] == "add":
			json.NewDecoder(r.Body).Decode(&f.added)
			w.WriteHeader(http.StatusOK)
		case len(parts) == 2 && parts[1] == "query":
			json.NewDecoder(r.Body).Decode(&f.queried)
			json.NewEncoder(w).Encode(db.QueryResponse{
				IDs:       [][]string{{"d1_chunk_1", "d1_chunk_0"}},
				Documents: [][]string{{"closest text", "further text"}},
				Metadatas: [][]map[string]interface{}{{
					{"source": "d1", "chunk_index": float64(1)},
					{"source": "d1", "chunk_index": float64(0)},
				}},
				Distances: [][]float32{{0.1, 0.4}},
			})
		default:
			http.NotFound(w, r)
		}
	})

	return mux
}

func setupChromaRepo(t *testing.T) (*ChromaVectorRepository, *fakeChroma) {
	fake := newFakeChroma()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)

	client := db.NewChromaDBClient(db.ChromaDBConfig{
		Host: parsed.Hostname(),
		Port: port,
	})
	return NewChromaVectorRepository(client), fake
}

func TestChromaVectorRepository_EnsureCollectionCreatesOnce(t *testing.T) {
	repo, fake := setupChromaRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.EnsureCollection(ctx, "doc_d1"))
	assert.Contains(t, fake.collections, "doc_d1")

	// Second call is a no-op
	require.NoError(t, repo.EnsureCollection(ctx, "doc_d1"))
	assert.Len(t, fake.collections, 1)
}

func TestChromaVectorRepository_CollectionExists(t *testing.T) {
	repo, _ := setupChromaRepo(t)
	ctx := context.Background()

	exists, err := repo.CollectionExists(ctx, "doc_d1")
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.EnsureCollection(ctx, "doc_d1"))

	exists, err = repo.CollectionExists(ctx, "doc_d1")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestChromaVectorRepository_StoreChunksSendsScalarMetadata(t *testing.T) {
	repo, fake := setupChromaRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureCollection(ctx, "doc_d1"))

	chunks := []*models.EmbeddedChunk{
		{
			ID:         "d1_chunk_0",
			DocumentID: "d1",
			Text:       "chunk text",
			Embedding:  []float32{0.1, 0.2},
			ChunkIndex: 0,
			Metadata: map[string]interface{}{
				"source": "d1",
				"tags":   []string{"not", "scalar"}, // must be dropped
			},
		},
	}

	require.NoError(t, repo.StoreChunks(ctx, "doc_d1", chunks))

	ids := fake.added["ids"].([]interface{})
	assert.Equal(t, "d1_chunk_0", ids[0])

	metadatas := fake.added["metadatas"].([]interface{})
	metadata := metadatas[0].(map[string]interface{})
	assert.Equal(t, "d1", metadata["source"])
	assert.NotContains(t, metadata, "tags")
}

func TestChromaVectorRepository_QueryMapsDistancesToScores(t *testing.T) {
	repo, fake := setupChromaRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.EnsureCollection(ctx, "doc_d1"))

	chunks, err := repo.Query(ctx, "doc_d1", []float32{0.5, 0.5}, 3)

	assert.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "d1_chunk_1", chunks[0].ChunkID)
	assert.Equal(t, "d1", chunks[0].DocumentID)
	assert.Equal(t, "closest text", chunks[0].Text)
	assert.InDelta(t, 0.9, chunks[0].Score, 0.0001)
	assert.InDelta(t, 0.1, chunks[0].Distance, 0.0001)

	// n_results forwarded to the API
	assert.Equal(t, float64(3), fake.queried["n_results"])
}

func TestChromaVectorRepository_QueryAbsentCollectionIsEmpty(t *testing.T) {
	repo, _ := setupChromaRepo(t)

	chunks, err := repo.Query(context.Background(), "doc_missing", []float32{0.5}, 3)

	assert.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChromaVectorRepository_DeleteCollection(t *testing.T) {
	repo, fake := setupChromaRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.EnsureCollection(ctx, "doc_d1"))
	require.NoError(t, repo.DeleteCollection(ctx, "doc_d1"))
	assert.NotContains(t, fake.collections, "doc_d1")
}

func TestChromaVectorRepository_Ping(t *testing.T) {
	repo, _ := setupChromaRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
