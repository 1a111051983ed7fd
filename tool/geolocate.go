package tool

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ragmesh/ragmesh/core"
)

const defaultGeolocateEndpoint = "http://ip-api.com/json/"

// GeolocateOptions configure the IP geolocation tool.
type GeolocateOptions struct {
	// HTTPClient used for requests. Defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	// Endpoint overrides the geolocation provider URL (tests point this at a fake).
	Endpoint string
}

// GeolocateTool resolves the caller's public IP to a city/region/country via
// the ip-api.com JSON endpoint. Like all provider-backed tools, every failure
// mode (transport error, non-success provider status, malformed payload)
// surfaces as an explanatory result string so the episode continues.
type GeolocateTool struct {
	client   *http.Client
	endpoint string
}

// geoResponse mirrors the subset of ip-api.com's payload we read.
type geoResponse struct {
	Status     string `json:"status"` // "success" or "fail"
	Message    string `json:"message"`
	City       string `json:"city"`
	RegionName string `json:"regionName"`
	Country    string `json:"country"`
}

// NewGeolocateTool constructs the geolocation tool.
func NewGeolocateTool(optFns ...func(o *GeolocateOptions)) *GeolocateTool {
	opts := GeolocateOptions{Endpoint: defaultGeolocateEndpoint}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &GeolocateTool{client: opts.HTTPClient, endpoint: opts.Endpoint}
}

// Name implements Tool.
func (t *GeolocateTool) Name() string { return "get_location" }

// Description implements Tool.
func (t *GeolocateTool) Description() string {
	return "Provide the user's current location (city, region, country) upon request."
}

// Parameters implements Tool.
func (t *GeolocateTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The location request from the user",
			},
		},
	}
}

// Call implements Tool. The result is always a string.
func (t *GeolocateTool) Call(toolCtx *core.ToolContext, _ map[string]any) (any, error) {
	logger := toolCtx.Logger()

	req, err := http.NewRequestWithContext(toolCtx.Context(), http.MethodGet, t.endpoint, nil)
	if err != nil {
		return fmt.Sprintf("Error getting location: %v", err), nil
	}

	resp, err := t.client.Do(req)
	if err != nil {
		logger.Warn("tool.get_location.provider_error", "error", err.Error())
		return fmt.Sprintf("Error getting location: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("tool.get_location.provider_status", "status", resp.StatusCode)
		return fmt.Sprintf("Error getting location: provider returned HTTP %d", resp.StatusCode), nil
	}

	var geo geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return fmt.Sprintf("Error getting location: %v", err), nil
	}

	if geo.Status != "success" {
		logger.Info("tool.get_location.not_ok", "status", geo.Status, "message", geo.Message)
		return "Unable to determine your location", nil
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{geo.City, geo.RegionName, geo.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "Unable to determine your location", nil
	}

	return fmt.Sprintf("Your current location is: %s", strings.Join(parts, ", ")), nil
}
