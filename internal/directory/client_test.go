package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jari-backend/internal/common/config"
	"jari-backend/internal/common/errors"
	"jari-backend/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

const sampleDataset = `{
	"Acme": {
		"Engineering": [
			{"firstname": "Jane", "lastname": "Scotson", "personid": "p1", "concerned": "c1", "phoneNumbers": ["+123"]},
			{"firstname": "John", "lastname": "Doe", "personid": "p2", "concerned": "c2", "phoneNumbers": []}
		],
		"Sales": [
			{"firstname": "Pops", "lastname": "Apell", "personid": "p3", "concerned": "c3", "phoneNumbers": ["+456", "+789"]}
		]
	},
	"Globex": {
		"Support": [
			{"firstname": "Jane", "lastname": "Scotson", "personid": "p9", "concerned": "c9", "phoneNumbers": ["+999"]}
		]
	}
}`

func newTestClient(t *testing.T, serverURL string) *Client {
	return NewClient(config.DirectoryConfig{
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	}, logger.NewTestLogger(t))
}

func newDatasetServer(t *testing.T, dataset string, calls *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		assert.Equal(t, "/api/company-structure/Acme", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dataset))
	}))
}

// ==========================
// Dataset Flattening Tests
// ==========================

func TestFlattenDataset_PreservesSourceOrder(t *testing.T) {
	entries, err := flattenDataset([]byte(sampleDataset))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "p1", entries[0].PersonID)
	assert.Equal(t, "p2", entries[1].PersonID)
	assert.Equal(t, "p3", entries[2].PersonID)
	assert.Equal(t, "p9", entries[3].PersonID)

	assert.Equal(t, "Acme", entries[0].Company)
	assert.Equal(t, "Engineering", entries[0].Organization)
	assert.Equal(t, "Globex", entries[3].Company)
	assert.Equal(t, "Support", entries[3].Organization)
}

func TestFlattenDataset_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json at all`},
		{"array root", `[1, 2, 3]`},
		{"people not a list", `{"Acme": {"Engineering": {"oops": true}}}`},
		{"truncated", `{"Acme": {"Engineering": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := flattenDataset([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestPersonEntry_FullName(t *testing.T) {
	assert.Equal(t, "Jane Scotson", PersonEntry{FirstName: "Jane", LastName: "Scotson"}.FullName())
	assert.Equal(t, "Jane", PersonEntry{FirstName: "Jane"}.FullName())
	assert.Equal(t, "Scotson", PersonEntry{LastName: "Scotson"}.FullName())
	assert.Equal(t, "", PersonEntry{}.FullName())
}

// ==========================
// Resolve Tests
// ==========================

func TestResolve_Found(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected *PersonRecord
	}{
		{
			name:  "exact match",
			query: "Jane Scotson",
			expected: &PersonRecord{
				PersonID: "p1", ConcernID: "c1", FullName: "Jane Scotson", PhoneNumber: "+123",
			},
		},
		{
			name:  "case insensitive",
			query: "jane SCOTSON",
			expected: &PersonRecord{
				PersonID: "p1", ConcernID: "c1", FullName: "Jane Scotson", PhoneNumber: "+123",
			},
		},
		{
			name:  "leading and trailing whitespace",
			query: "  Jane Scotson  ",
			expected: &PersonRecord{
				PersonID: "p1", ConcernID: "c1", FullName: "Jane Scotson", PhoneNumber: "+123",
			},
		},
		{
			name:  "no phone numbers",
			query: "John Doe",
			expected: &PersonRecord{
				PersonID: "p2", ConcernID: "c2", FullName: "John Doe",
			},
		},
		{
			name:  "first phone number wins",
			query: "Pops Apell",
			expected: &PersonRecord{
				PersonID: "p3", ConcernID: "c3", FullName: "Pops Apell", PhoneNumber: "+456",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newDatasetServer(t, sampleDataset, nil)
			defer server.Close()

			client := newTestClient(t, server.URL)
			record, err := client.Resolve(context.Background(), tt.query, "Acme")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, record)
		})
	}
}

func TestResolve_DuplicateNames_FirstInSourceOrderWins(t *testing.T) {
	// Jane Scotson appears under Acme/Engineering (p1) and Globex/Support (p9).
	server := newDatasetServer(t, sampleDataset, nil)
	defer server.Close()

	client := newTestClient(t, server.URL)
	record, err := client.Resolve(context.Background(), "Jane Scotson", "Acme")
	require.NoError(t, err)
	assert.Equal(t, "p1", record.PersonID)
}

func TestResolve_NotFound(t *testing.T) {
	server := newDatasetServer(t, sampleDataset, nil)
	defer server.Close()

	client := newTestClient(t, server.URL)
	record, err := client.Resolve(context.Background(), "Nobody Here", "Acme")
	assert.Nil(t, record)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePersonNotFound))
	assert.Contains(t, err.(*errors.StandardError).Message,
		"No person found with the name 'Nobody Here' in company 'Acme'")
}

func TestResolve_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"Acme": "not nested"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(t, server.URL)
			record, err := client.Resolve(context.Background(), "Jane Scotson", "Acme")
			assert.Nil(t, record)
			assert.True(t, errors.IsCode(err, errors.ErrCodeDirectoryUpstreamFailed))
		})
	}
}

func TestResolve_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := newTestClient(t, server.URL)
	record, err := client.Resolve(context.Background(), "Jane Scotson", "Acme")
	assert.Nil(t, record)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDirectoryUpstreamFailed))
}

func TestResolve_NoRetries(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Resolve(context.Background(), "Jane Scotson", "Acme")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
