package tool

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liteHTML = `<html><body><table>
<tr><td><a rel="nofollow" href="https://example.com/nvidia" class='result-link'>NVIDIA Revenue 2020-2024</a></td></tr>
<tr><td class='result-snippet'>NVIDIA total revenue reached $60.9 billion in fiscal 2024.</td></tr>
<tr><td><a rel="nofollow" href="https://example.com/history" class='result-link'>NVIDIA history</a></td></tr>
<tr><td class='result-snippet'>Yearly revenue figures since 2020.</td></tr>
</table></body></html>`

func TestDuckDuckGoToolParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "nvidia revenue", r.PostForm.Get("q"))
		w.Write([]byte(liteHTML))
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoTool(func(o *DuckDuckGoOptions) { o.Endpoint = srv.URL })

	result, err := ddg.Call(testToolContext(), map[string]any{"query": "nvidia revenue"})
	require.NoError(t, err)

	text, ok := result.(string)
	require.True(t, ok)
	assert.Contains(t, text, "## Search Results")
	assert.Contains(t, text, "[NVIDIA Revenue 2020-2024](https://example.com/nvidia)")
	assert.Contains(t, text, "$60.9 billion")
	assert.Contains(t, text, "[NVIDIA history](https://example.com/history)")
}

func TestDuckDuckGoToolMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(liteHTML))
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoTool(func(o *DuckDuckGoOptions) {
		o.Endpoint = srv.URL
		o.MaxResults = 1
	})

	result, err := ddg.Call(testToolContext(), map[string]any{"query": "nvidia"})
	require.NoError(t, err)
	text := result.(string)
	assert.Contains(t, text, "NVIDIA Revenue 2020-2024")
	assert.NotContains(t, text, "NVIDIA history")
}

// Provider failures must come back as strings, never as errors, so the
// episode continues.
func TestDuckDuckGoToolProviderFailureReturnsString(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		close   bool
	}{
		{
			name:    "http 500",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		},
		{
			name:    "connection refused",
			handler: func(w http.ResponseWriter, _ *http.Request) {},
			close:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			if tt.close {
				srv.Close()
			} else {
				defer srv.Close()
			}

			ddg := NewDuckDuckGoTool(func(o *DuckDuckGoOptions) { o.Endpoint = srv.URL })

			result, err := ddg.Call(testToolContext(), map[string]any{"query": "anything"})
			require.NoError(t, err)
			text, ok := result.(string)
			require.True(t, ok)
			assert.Contains(t, text, "Error performing web search")
		})
	}
}

func TestDuckDuckGoToolNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body>no hits here</body></html>"))
	}))
	defer srv.Close()

	ddg := NewDuckDuckGoTool(func(o *DuckDuckGoOptions) { o.Endpoint = srv.URL })

	result, err := ddg.Call(testToolContext(), map[string]any{"query": "gibberish"})
	require.NoError(t, err)
	assert.Contains(t, result.(string), "No results found")
}

func TestDuckDuckGoToolEmptyQuery(t *testing.T) {
	ddg := NewDuckDuckGoTool()
	_, err := ddg.Call(testToolContext(), map[string]any{"query": "  "})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}
