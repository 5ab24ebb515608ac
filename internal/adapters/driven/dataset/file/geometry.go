package file

import (
	"context"
	"encoding/json"
	"os"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// Ensure GeometrySource implements the interface.
var _ driven.GeometrySource = (*GeometrySource)(nil)

// GeometrySource reads the coordinates dataset: a JSON array of shapes
// joined to records by the identifier field. Shapes are markers
// (lat/lng), polygons (latlngs vertex list) or rectangles (two corner
// bounds, widened to a polygon).
type GeometrySource struct {
	path    string
	idField string
}

// NewGeometrySource creates a file-backed geometry source.
func NewGeometrySource(path, idField string) *GeometrySource {
	return &GeometrySource{path: path, idField: idField}
}

// Load reads the coordinates file. Missing or malformed data degrades to
// an empty result: the plan view then simply plots nothing.
func (g *GeometrySource) Load(_ context.Context) ([]domain.Geometry, error) {
	if g.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		logger.Warn("Geometry: unreadable %s: %v", g.path, err)
		return nil, nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn("Geometry: malformed %s: %v", g.path, err)
		return nil, nil
	}

	out := make([]domain.Geometry, 0, len(raw))
	for _, item := range raw {
		if geo, ok := g.parseItem(item); ok {
			out = append(out, geo)
		}
	}
	logger.Info("Geometry: loaded %d of %d shapes from %s", len(out), len(raw), g.path)
	return out, nil
}

func (g *GeometrySource) parseItem(item map[string]any) (domain.Geometry, bool) {
	id, _ := item[g.idField].(string)
	if id == "" {
		return domain.Geometry{}, false
	}
	kind, _ := item["type"].(string)

	switch kind {
	case "marker":
		lat, okLat := toFloat(item["lat"])
		lng, okLng := toFloat(item["lng"])
		if !okLat || !okLng {
			return domain.Geometry{}, false
		}
		return domain.Geometry{RecordID: id, Kind: domain.GeometryMarker, Lat: lat, Lng: lng}, true

	case "polygon":
		points := toPoints(item["latlngs"])
		if len(points) < 3 {
			return domain.Geometry{}, false
		}
		return domain.Geometry{RecordID: id, Kind: domain.GeometryPolygon, Points: points}, true

	case "rectangle":
		corners := toPoints(item["bounds"])
		if len(corners) != 2 {
			return domain.Geometry{}, false
		}
		sw, ne := corners[0], corners[1]
		points := [][2]float64{sw, {sw[0], ne[1]}, ne, {ne[0], sw[1]}}
		return domain.Geometry{RecordID: id, Kind: domain.GeometryPolygon, Points: points}, true

	default:
		return domain.Geometry{}, false
	}
}

func toFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// toPoints decodes a JSON [[lat, lng], ...] nesting.
func toPoints(v any) [][2]float64 {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([][2]float64, 0, len(list))
	for _, entry := range list {
		pair, ok := entry.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		lat, okLat := toFloat(pair[0])
		lng, okLng := toFloat(pair[1])
		if !okLat || !okLng {
			continue
		}
		out = append(out, [2]float64{lat, lng})
	}
	return out
}
