package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/kdcreatives/kdcreatives-backend/models"
)

const (
	unsplashAPIURL   = "https://api.unsplash.com"
	unsplashCacheTTL = 5 * time.Minute
	maxRandomPhotos  = 30
)

// UnsplashPhoto is a candidate reference image, already shaped for the
// quotation's referenceImages field (minus AddedAt).
type UnsplashPhoto struct {
	UnsplashID   string              `json:"unsplashId"`
	URL          string              `json:"url"`
	ThumbURL     string              `json:"thumbUrl"`
	Description  string              `json:"description"`
	Photographer models.Photographer `json:"photographer"`
	PhotoLink    string              `json:"photoLink"`
}

type UnsplashSearchResult struct {
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Results    []UnsplashPhoto `json:"results"`
	Cached     bool            `json:"cached,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type UnsplashService struct {
	accessKey string
	baseURL   string
	client    *http.Client
	cache     Cache
	ttl       time.Duration

	mu         sync.Mutex
	recentKeys []string // most recent search cache keys, for the 429 fallback
}

func NewUnsplashService(accessKey string, cache Cache) (*UnsplashService, error) {
	if accessKey == "" {
		return nil, fmt.Errorf("UNSPLASH_ACCESS_KEY not configured in environment variables")
	}
	return &UnsplashService{
		accessKey: accessKey,
		baseURL:   unsplashAPIURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		cache:     cache,
		ttl:       unsplashCacheTTL,
	}, nil
}

// SetBaseURL points the client at a different API host. Tests use it.
func (s *UnsplashService) SetBaseURL(u string) {
	s.baseURL = u
}

// SearchPhotos queries Unsplash, memoizing results per (query, page,
// perPage). On an upstream 429 it falls back to the most recent cached
// search rather than failing the caller outright.
func (s *UnsplashService) SearchPhotos(ctx context.Context, query string, page, perPage int) (*UnsplashSearchResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 30 {
		perPage = 10
	}
	cacheKey := fmt.Sprintf("search:%s:%d:%d", query, page, perPage)

	if cached, ok := s.cache.Get(cacheKey); ok {
		if result, ok := cached.(*UnsplashSearchResult); ok {
			out := *result
			out.Cached = true
			return &out, nil
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var raw struct {
		Total      int        `json:"total"`
		TotalPages int        `json:"total_pages"`
		Results    []apiPhoto `json:"results"`
	}
	if err := s.getJSON(ctx, "/search/photos", params, &raw); err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusTooManyRequests {
			if fallback := s.anyCachedSearch(); fallback != nil {
				log.Println("unsplash rate limit exceeded, returning cached results")
				out := *fallback
				out.Cached = true
				out.Message = "Rate limit exceeded. Showing cached results."
				return &out, nil
			}
		}
		return nil, err
	}

	result := &UnsplashSearchResult{
		Total:      raw.Total,
		TotalPages: raw.TotalPages,
		Results:    formatPhotos(raw.Results),
	}
	s.cache.Set(cacheKey, result, s.ttl)
	s.rememberKey(cacheKey)
	return result, nil
}

// RandomPhotos fetches up to 30 random photos, optionally filtered by query.
func (s *UnsplashService) RandomPhotos(ctx context.Context, count int, query string) (*UnsplashSearchResult, error) {
	if count < 1 {
		count = 5
	}
	if count > maxRandomPhotos {
		count = maxRandomPhotos
	}

	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	if query != "" {
		params.Set("query", query)
	}

	var raw []apiPhoto
	if err := s.getJSON(ctx, "/photos/random", params, &raw); err != nil {
		return nil, err
	}
	return &UnsplashSearchResult{Results: formatPhotos(raw)}, nil
}

type apiPhoto struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	Urls           struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
	Links struct {
		HTML string `json:"html"`
	} `json:"links"`
}

func formatPhotos(raw []apiPhoto) []UnsplashPhoto {
	photos := make([]UnsplashPhoto, 0, len(raw))
	for _, p := range raw {
		desc := p.Description
		if desc == "" {
			desc = p.AltDescription
		}
		photos = append(photos, UnsplashPhoto{
			UnsplashID:  p.ID,
			URL:         p.Urls.Regular,
			ThumbURL:    p.Urls.Thumb,
			Description: desc,
			Photographer: models.Photographer{
				Name:        p.User.Name,
				Username:    p.User.Username,
				ProfileLink: "https://unsplash.com/@" + p.User.Username,
			},
			PhotoLink: p.Links.HTML,
		})
	}
	return photos
}

func (s *UnsplashService) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Client-ID "+s.accessKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &UpstreamError{Status: resp.StatusCode, Message: string(body)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *UnsplashService) rememberKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentKeys = append([]string{key}, s.recentKeys...)
	if len(s.recentKeys) > 16 {
		s.recentKeys = s.recentKeys[:16]
	}
}

func (s *UnsplashService) anyCachedSearch() *UnsplashSearchResult {
	s.mu.Lock()
	keys := append([]string(nil), s.recentKeys...)
	s.mu.Unlock()

	for _, key := range keys {
		if cached, ok := s.cache.Get(key); ok {
			if result, ok := cached.(*UnsplashSearchResult); ok {
				return result
			}
		}
	}
	return nil
}
