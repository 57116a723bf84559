// File: internal/local/search.go
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SearchDocument is the Elasticsearch representation of a local.
type SearchDocument struct {
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Category      string             `json:"category"`
	Tagline       string             `json:"tagline,omitempty"`
	StreetAddress string             `json:"street_address,omitempty"`
	ZipCode       string             `json:"zip_code,omitempty"`
	ImageURL      string             `json:"img_url,omitempty"`
	Location      map[string]float64 `json:"location,omitempty"`
	CreatedAt     string             `json:"created_at"`
}

// ToSearchDocument converts a local to its search document body.
func ToSearchDocument(l *Local) ([]byte, error) {
	if l == nil {
		return nil, errors.New("local cannot be nil")
	}
	doc := SearchDocument{
		Name:          l.Name,
		Slug:          l.Slug,
		Category:      l.Category,
		Tagline:       l.Tagline,
		StreetAddress: l.StreetAddress,
		ZipCode:       l.ZipCode,
		ImageURL:      l.ImageURL,
		CreatedAt:     l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.Geolocation != nil {
		doc.Location = map[string]float64{"lat": l.Geolocation.Lat, "lon": l.Geolocation.Lon}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error marshalling local to JSON for ES: %w", err)
	}
	return b, nil
}
