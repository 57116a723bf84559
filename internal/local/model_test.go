package local

import (
	"encoding/json"
	"testing"

	"torslanda_locals_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPoint_ValueAndScan(t *testing.T) {
	p := GeoPoint{Lon: 11.7712, Lat: 57.7156}
	v, err := p.Value()
	require.NoError(t, err)
	assert.Equal(t, "POINT(11.7712 57.7156)", v)

	var back GeoPoint
	require.NoError(t, back.Scan([]byte("SRID=4326;POINT(11.7712 57.7156)")))
	assert.Equal(t, p, back)

	assert.Error(t, back.Scan("POINT(1)"))
	assert.Error(t, back.Scan(42))
}

func TestGeoPoint_JSON(t *testing.T) {
	b, err := json.Marshal(GeoPoint{Lon: 11.5, Lat: 57.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Point","coordinates":[11.5,57.5]}`, string(b))

	var p GeoPoint
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Point","coordinates":[11.5,57.5]}`), &p))
	assert.Equal(t, GeoPoint{Lon: 11.5, Lat: 57.5}, p)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"LineString","coordinates":[1,2]}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"coordinates":[1]}`), &p))
}

func TestGeoPoint_Validate(t *testing.T) {
	assert.NoError(t, GeoPoint{Lon: 11, Lat: 57}.Validate())
	assert.ErrorIs(t, GeoPoint{Lon: 11, Lat: 91}.Validate(), common.ErrValidation)
	assert.ErrorIs(t, GeoPoint{Lon: -181, Lat: 0}.Validate(), common.ErrValidation)
}

func TestToSearchDocument(t *testing.T) {
	l := &Local{Name: "Café Luna", Slug: "cafe-luna", Category: "Cafe", Geolocation: &GeoPoint{Lon: 11.5, Lat: 57.5}}

	b, err := ToSearchDocument(l)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "cafe-luna", doc["slug"])
	assert.Equal(t, map[string]interface{}{"lat": 57.5, "lon": 11.5}, doc["location"])

	_, err = ToSearchDocument(nil)
	assert.Error(t, err)
}
