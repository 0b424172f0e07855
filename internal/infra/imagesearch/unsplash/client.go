package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PMQ9/ai-attire/internal/domain/stylist"
)

const defaultBaseURL = "https://api.unsplash.com"

// Client looks up representative outfit photographs on Unsplash. All
// lookups are best effort: failures produce placeholder entries, never
// errors.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an image search client.
func NewClient(accessKey, baseURL string) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		accessKey: strings.TrimSpace(accessKey),
		baseURL:   strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ImagesForDescriptions fetches one image per description. Lookups for
// the independent descriptions run concurrently; a failed lookup yields
// a placeholder entry in its slot.
func (c *Client) ImagesForDescriptions(ctx context.Context, descriptions []string) []stylist.OutfitImage {
	images := make([]stylist.OutfitImage, len(descriptions))

	var wg sync.WaitGroup
	for i, description := range descriptions {
		wg.Add(1)
		go func(i int, description string) {
			defer wg.Done()
			images[i] = c.lookup(ctx, description)
		}(i, description)
	}
	wg.Wait()

	return images
}

func (c *Client) lookup(ctx context.Context, description string) stylist.OutfitImage {
	placeholder := stylist.OutfitImage{Description: description, Placeholder: true}
	if c.accessKey == "" {
		return placeholder
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=1&orientation=portrait",
		c.baseURL, url.QueryEscape(description+" outfit"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return placeholder
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return placeholder
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return placeholder
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return placeholder
	}

	var raw struct {
		Results []struct {
			URLs struct {
				Regular string `json:"regular"`
				Thumb   string `json:"thumb"`
			} `json:"urls"`
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &raw); err != nil || len(raw.Results) == 0 {
		return placeholder
	}

	first := raw.Results[0]
	return stylist.OutfitImage{
		Description: description,
		URL:         first.URLs.Regular,
		ThumbURL:    first.URLs.Thumb,
		Credit:      first.User.Name,
	}
}
