// Package azdo implements the Azure DevOps work item tracking client.
package azdo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/martinb35/Bugger/internal/common"
	"github.com/martinb35/Bugger/internal/config"
	"github.com/martinb35/Bugger/internal/model"
)

const apiVersion = "7.0"

// batchFields is the fixed field set requested for every work item.
var batchFields = []string{
	"System.Id",
	"System.Title",
	"System.State",
	"System.CreatedDate",
	"System.ActivatedDate",
	"System.Description",
}

// Client talks to the Azure DevOps REST API using a personal access token.
type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the configured organization and project.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: cfg.BaseURL(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Azure DevOps API response types.
type wiqlResponse struct {
	WorkItems []wiqlItem `json:"workItems"`
}

type wiqlItem struct {
	ID *int `json:"id"`
}

type batchRequest struct {
	IDs    []int    `json:"ids"`
	Fields []string `json:"fields"`
}

type batchResponse struct {
	Value []batchItem `json:"value"`
}

type batchItem struct {
	ID     *int           `json:"id"`
	Fields workItemFields `json:"fields"`
}

type workItemFields struct {
	Title         string `json:"System.Title"`
	State         string `json:"System.State"`
	CreatedDate   string `json:"System.CreatedDate"`
	ActivatedDate string `json:"System.ActivatedDate"`
	Description   string `json:"System.Description"`
}

// FetchActiveBugIDs queries for IDs of non-closed bugs assigned to the
// configured user, newest first.
func (c *Client) FetchActiveBugIDs(ctx context.Context) ([]int, error) {
	wiql := fmt.Sprintf(
		"SELECT [System.Id] FROM WorkItems"+
			" WHERE [System.WorkItemType] = 'Bug'"+
			" AND [System.State] <> 'Closed'"+
			" AND [System.AssignedTo] = '%s'"+
			" ORDER BY [System.CreatedDate] DESC",
		c.cfg.UserEmail,
	)

	url := fmt.Sprintf("%s/_apis/wit/wiql?api-version=%s", c.baseURL, apiVersion)
	body, err := c.post(ctx, url, map[string]string{"query": wiql})
	if err != nil {
		return nil, err
	}

	var result wiqlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v (raw response: %s)", common.ErrParseFailure, err, string(body))
	}

	ids := make([]int, 0, len(result.WorkItems))
	for _, item := range result.WorkItems {
		if item.ID == nil {
			common.LogWarn("Skipping query result with missing work item ID", nil)
			continue
		}
		ids = append(ids, *item.ID)
	}

	slog.Debug("Fetched active bug IDs", "count", len(ids))
	return ids, nil
}

// FetchBugDetails batch-fetches the standard field set for the given IDs.
// An empty ID list short-circuits without a network call. Callers must keep
// batches within the API's accepted size; no chunking is performed.
func (c *Client) FetchBugDetails(ctx context.Context, ids []int) ([]model.WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	url := fmt.Sprintf("%s/_apis/wit/workitemsbatch?api-version=%s", c.baseURL, apiVersion)
	body, err := c.post(ctx, url, batchRequest{IDs: ids, Fields: batchFields})
	if err != nil {
		return nil, err
	}

	var result batchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v (raw response: %s)", common.ErrParseFailure, err, string(body))
	}

	items := make([]model.WorkItem, 0, len(result.Value))
	for _, item := range result.Value {
		if item.ID == nil {
			common.LogWarn("Dropping batch item with missing work item ID", common.Fields{"title": item.Fields.Title})
			continue
		}
		items = append(items, model.WorkItem{
			ID:            *item.ID,
			Title:         item.Fields.Title,
			State:         item.Fields.State,
			CreatedDate:   item.Fields.CreatedDate,
			ActivatedDate: item.Fields.ActivatedDate,
			Description:   item.Fields.Description,
		})
	}

	slog.Debug("Fetched bug details", "requested", len(ids), "returned", len(items))
	return items, nil
}

// post sends an authenticated JSON POST and returns the raw response body.
func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d - %s", common.ErrAPIFailure, resp.StatusCode, string(body))
	}

	return body, nil
}

// authHeader encodes the PAT as the password half of a Basic credential with
// an empty username. The token itself is never logged.
func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+c.cfg.PAT))
}
