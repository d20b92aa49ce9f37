package elastic

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	esDoc "villagepulse-main/internal/types/elastic"
	myErr "villagepulse-main/internal/types/errors"
)

type mockTransport struct {
	Response    *http.Response
	RoundTripFn func(req *http.Request) (*http.Response, error)
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFn(req)
}

func setupTestService(t *testing.T, transport http.RoundTripper) *ElasticService {
	t.Helper()
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: transport,
	})
	assert.NoError(t, err)

	logger := zaptest.NewLogger(t).Sugar()

	return NewService(client, logger, "test-index")
}

func elasticOKResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestIndexFeedback(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		doc         esDoc.FeedbackDoc
		mockFn      func(req *http.Request) (*http.Response, error)
		expectedErr error
	}{
		{
			name: "successful indexing",
			doc: esDoc.FeedbackDoc{
				ID:        "test-id",
				Title:     "Dark theme support",
				Body:      "Please add a dark theme",
				VillageID: "village-1",
				State:     "new",
			},
			mockFn: func(req *http.Request) (*http.Response, error) {
				if req.Method == "GET" && req.URL.Path == "/_cluster/health" {
					return &http.Response{
						StatusCode: 200,
						Header:     http.Header{"X-elastic-product": []string{"Elasticsearch"}},
						Body:       io.NopCloser(strings.NewReader(`{"status":"green"}`)),
					}, nil
				}

				return elasticOKResponse(`{}`), nil
			},
			expectedErr: nil,
		},
		{
			name: "elasticsearch error",
			doc: esDoc.FeedbackDoc{
				ID:    "test-id",
				Title: "Dark theme support",
				State: "new",
			},
			mockFn: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(strings.NewReader(`{"error": "server error"}`)),
				}, nil
			},
			expectedErr: myErr.ErrIndexing,
		},
		{
			name: "request error",
			doc: esDoc.FeedbackDoc{
				ID:    "test-id",
				Title: "Dark theme support",
				State: "new",
			},
			mockFn: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection error")
			},
			expectedErr: errors.New("connection error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{
				RoundTripFn: tt.mockFn,
			}

			service := setupTestService(t, transport)
			err := service.IndexFeedback(context.Background(), tt.doc)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBulkIndex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		docs        []esDoc.FeedbackDoc
		mockFn      func(req *http.Request) (*http.Response, error)
		expectedErr error
	}{
		{
			name: "successful bulk indexing",
			docs: []esDoc.FeedbackDoc{
				{
					ID:        "test-id-1",
					Title:     "Dark theme support",
					VillageID: "village-1",
					State:     "new",
				},
				{
					ID:        "test-id-2",
					Title:     "Export to CSV",
					VillageID: "village-2",
					State:     "triaged",
				},
			},
			mockFn: func(req *http.Request) (*http.Response, error) {
				if req.Method == "GET" && req.URL.Path == "/_cluster/health" {

					return &http.Response{
						StatusCode: 200,
						Header:     http.Header{"X-elastic-product": []string{"Elasticsearch"}},
						Body:       io.NopCloser(strings.NewReader(`{"status":"green"}`)),
					}, nil
				}

				body, err := io.ReadAll(req.Body)
				assert.NoError(t, err)
				assert.Contains(t, string(body), `"_id":"test-id-1"`)
				assert.Contains(t, string(body), `"_id":"test-id-2"`)
				return elasticOKResponse(`{}`), nil
			},
			expectedErr: nil,
		},
		{
			name: "empty docs array",
			docs: []esDoc.FeedbackDoc{},
			mockFn: func(req *http.Request) (*http.Response, error) {
				t.Error("Request should not be made for empty docs")
				return nil, nil
			},
			expectedErr: nil,
		},
		{
			name: "bulk request error",
			docs: []esDoc.FeedbackDoc{
				{
					ID:    "test-id-1",
					Title: "Dark theme support",
					State: "new",
				},
			},
			mockFn: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("bulk request failed")
			},
			expectedErr: errors.New("bulk request failed"),
		},
		{
			name: "bulk response error",
			docs: []esDoc.FeedbackDoc{
				{
					ID:    "test-id-1",
					Title: "Dark theme support",
					State: "new",
				},
			},
			mockFn: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(strings.NewReader(`{"error": "bulk error"}`)),
				}, nil
			},
			expectedErr: myErr.ErrIndexing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{
				RoundTripFn: tt.mockFn,
			}

			service := setupTestService(t, transport)
			err := service.BulkIndex(context.Background(), tt.docs)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchByTitle(t *testing.T) {
	t.Parallel()

	transport := &mockTransport{
		RoundTripFn: func(req *http.Request) (*http.Response, error) {
			if req.Method == "GET" && req.URL.Path == "/_cluster/health" {
				return &http.Response{
					StatusCode: 200,
					Header:     http.Header{"X-elastic-product": []string{"Elasticsearch"}},
					Body:       io.NopCloser(strings.NewReader(`{"status":"green"}`)),
				}, nil
			}

			body := `{
				"hits": {
					"hits": [
						{"_source": {"id": "fb-1", "title": "Dark theme support", "state": "new"}},
						{"_source": {"id": "fb-2", "title": "Dark mode for dashboard", "state": "triaged"}}
					]
				}
			}`
			return elasticOKResponse(body), nil
		},
	}

	service := setupTestService(t, transport)
	docs, err := service.SearchByTitle(context.Background(), "dark theme")

	assert.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, "fb-1", docs[0].ID)
	assert.Equal(t, "Dark theme support", docs[0].Title)
}
