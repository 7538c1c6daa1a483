package azdo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinb35/Bugger/internal/common"
	"github.com/martinb35/Bugger/internal/config"
)

func testClient(serverURL string) *Client {
	cfg := &config.Config{
		Organization: "contoso",
		Project:      "windows",
		UserEmail:    "dev@contoso.com",
		PAT:          "secret-pat",
	}
	c := NewClient(cfg)
	c.baseURL = serverURL
	return c
}

func TestFetchActiveBugIDs(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_, _ = w.Write([]byte(`{"workItems": [{"id": 101}, {"id": 102}, {"url": "no-id"}, {"id": 103}]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	ids, err := client.FetchActiveBugIDs(context.Background())
	require.NoError(t, err)

	// Items without an id are skipped, order is preserved.
	assert.Equal(t, []int{101, 102, 103}, ids)

	// Basic auth with empty username, PAT as password.
	assert.Equal(t, "Basic OnNlY3JldC1wYXQ=", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/_apis/wit/wiql?api-version=7.0", gotPath)

	query := gotBody["query"]
	assert.Contains(t, query, "[System.WorkItemType] = 'Bug'")
	assert.Contains(t, query, "[System.State] <> 'Closed'")
	assert.Contains(t, query, "[System.AssignedTo] = 'dev@contoso.com'")
	assert.Contains(t, query, "ORDER BY [System.CreatedDate] DESC")
}

func TestFetchActiveBugIDsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "TF400813: access denied"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchActiveBugIDs(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, common.ErrAPIFailure)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "TF400813")
}

func TestFetchActiveBugIDsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchActiveBugIDs(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, common.ErrParseFailure)
	assert.Contains(t, err.Error(), "definitely not json")
}

func TestFetchBugDetails(t *testing.T) {
	var gotPath string
	var gotBody batchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_, _ = w.Write([]byte(`{"value": [
			{"id": 101, "fields": {
				"System.Title": "App crashes",
				"System.State": "Active",
				"System.CreatedDate": "2026-08-01T10:00:00Z",
				"System.ActivatedDate": "2026-08-02T09:30:00Z",
				"System.Description": "System crashes on boot with bugcheck 0x1E"
			}},
			{"fields": {"System.Title": "No id here"}},
			{"id": 102, "fields": {"System.Title": "x"}}
		]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	items, err := client.FetchBugDetails(context.Background(), []int{101, 102, 999})
	require.NoError(t, err)

	assert.Equal(t, "/_apis/wit/workitemsbatch?api-version=7.0", gotPath)
	assert.Equal(t, []int{101, 102, 999}, gotBody.IDs)
	assert.Equal(t, batchFields, gotBody.Fields)

	// The item without an id is dropped, the rest of the batch survives.
	require.Len(t, items, 2)
	assert.Equal(t, 101, items[0].ID)
	assert.Equal(t, "App crashes", items[0].Title)
	assert.Equal(t, "Active", items[0].State)
	assert.Equal(t, "2026-08-01T10:00:00Z", items[0].CreatedDate)
	assert.Equal(t, "2026-08-02T09:30:00Z", items[0].ActivatedDate)
	assert.Equal(t, "System crashes on boot with bugcheck 0x1E", items[0].Description)

	assert.Equal(t, 102, items[1].ID)
	assert.Empty(t, items[1].Description)
}

func TestFetchBugDetailsEmptyIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no network call expected for an empty ID list")
	}))
	defer server.Close()

	client := testClient(server.URL)
	items, err := client.FetchBugDetails(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchBugDetailsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "The batch request is invalid"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.FetchBugDetails(context.Background(), []int{1})
	require.Error(t, err)

	assert.ErrorIs(t, err, common.ErrAPIFailure)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "batch request is invalid")
}
