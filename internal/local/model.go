// File: internal/local/model.go
package local

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"torslanda_locals_backend/internal/common"
)

// GeoPoint is a WGS84 coordinate, serialized as a GeoJSON Point.
type GeoPoint struct {
	Lon float64
	Lat float64
}

// Value implements the driver.Valuer interface for GeoPoint.
func (p GeoPoint) Value() (driver.Value, error) {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(p.Lon, 'f', -1, 64),
		strconv.FormatFloat(p.Lat, 'f', -1, 64)), nil
}

// Scan implements the sql.Scanner interface for GeoPoint.
func (p *GeoPoint) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		p.Lon, p.Lat = 0, 0
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return errors.New("failed to scan GeoPoint: invalid type")
	}
	s = strings.TrimPrefix(s, "SRID=4326;")
	s = strings.TrimPrefix(s, "POINT(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return errors.New("failed to scan GeoPoint: invalid format, expected POINT(lon lat)")
	}
	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("failed to parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("failed to parse latitude: %w", err)
	}
	p.Lon, p.Lat = lon, lat
	return nil
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{Type: "Point", Coordinates: []float64{p.Lon, p.Lat}})
}

func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var g geoJSONPoint
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	if g.Type != "" && g.Type != "Point" {
		return fmt.Errorf("unsupported geometry type %q", g.Type)
	}
	if len(g.Coordinates) != 2 {
		return errors.New("geolocation must have exactly two coordinates [lon, lat]")
	}
	p.Lon, p.Lat = g.Coordinates[0], g.Coordinates[1]
	return nil
}

// Validate checks the coordinate ranges.
func (p GeoPoint) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return common.ValidationError("latitude", "The latitude field must be a valid latitude.")
	}
	if p.Lon < -180 || p.Lon > 180 {
		return common.ValidationError("longitude", "The longitude field must be a valid longitude.")
	}
	return nil
}

// Local is a business listed in the directory.
type Local struct {
	common.BaseModel
	Name          string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_locals_name" json:"name"`
	Slug          string    `gorm:"type:varchar(255);not null;index:idx_locals_slug" json:"slug"`
	Category      string    `gorm:"type:varchar(100)" json:"category"`
	Tagline       string    `gorm:"type:text" json:"tagline"`
	StreetAddress string    `gorm:"type:varchar(255)" json:"street_address"`
	ZipCode       string    `gorm:"type:varchar(20)" json:"zip_code"`
	PhoneNumber   string    `gorm:"type:varchar(50)" json:"phone_number"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	WebShop       string    `gorm:"type:text" json:"web_shop"`
	Booking       string    `gorm:"type:text" json:"booking"`
	URL           string    `gorm:"column:url;type:text" json:"url"`
	Geolocation   *GeoPoint `gorm:"type:text" json:"geolocation,omitempty"`
	ImageURL      string    `gorm:"column:image_url;type:text" json:"img_url"`
	ImageID       string    `gorm:"column:image_id;type:varchar(255)" json:"img_id"`
}

func (Local) TableName() string {
	return "locals"
}

// --- DTOs ---

// CreateLocalRequest holds the multipart form fields of POST /locals.
type CreateLocalRequest struct {
	Name          string   `form:"name" json:"name" validate:"required,max=255"`
	Category      string   `form:"category" json:"category" validate:"max=100"`
	Tagline       string   `form:"tagline" json:"tagline" validate:"max=1000"`
	StreetAddress string   `form:"street_address" json:"street_address" validate:"max=255"`
	Street        string   `form:"street" json:"-"`
	ZipCode       string   `form:"zip_code" json:"zip_code" validate:"max=20"`
	PhoneNumber   string   `form:"phone_number" json:"phone_number" validate:"max=50"`
	Email         string   `form:"email" json:"email" validate:"omitempty,email,max=255"`
	WebShop       string   `form:"web_shop" json:"web_shop" validate:"omitempty,url"`
	Booking       string   `form:"booking" json:"booking" validate:"omitempty,url"`
	URL           string   `form:"url" json:"url" validate:"omitempty,url"`
	Longitude     *float64 `form:"longitude" json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	Latitude      *float64 `form:"latitude" json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
}

// SeedRecord is one entry of the seed dataset.
type SeedRecord struct {
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Tagline       string    `json:"tagline"`
	Img           string    `json:"img"`
	StreetAddress string    `json:"street_address"`
	ZipCode       string    `json:"zip_code"`
	PhoneNumber   string    `json:"phone_number"`
	Email         string    `json:"email"`
	WebShop       string    `json:"web_shop"`
	Booking       string    `json:"booking"`
	URL           string    `json:"url"`
	Geolocation   *GeoPoint `json:"geolocation"`
}

// SeedReport summarizes one population run.
type SeedReport struct {
	Total    int `json:"total"`
	Inserted int `json:"inserted"`
	Failed   int `json:"failed"`
}
