package domain

import (
	"fmt"
	"strconv"
)

// Record is one catalogued item of the exhibit dataset. Fields are raw
// free-text values keyed by the dataset's column names; delimited-list
// fields (tags) stay unsplit here and are interpreted by facet extractors.
// Records are immutable once ingested; the engine never writes to them.
type Record struct {
	// ID is the unique, stable, case-sensitive identifier
	// (the inventory number in the source catalogue).
	ID string

	// Fields maps field names to their raw scalar values.
	Fields map[string]string
}

// Field returns the raw value of a named field, or "" if absent.
func (r Record) Field(name string) string {
	return r.Fields[name]
}

// IngestRecords converts decoded JSON objects into Records. The identifier
// is taken from idField; objects without a non-empty identifier are dropped
// silently, as are later duplicates of an identifier already seen (first
// occurrence wins). Non-string scalars are stringified; nested values are
// ignored.
func IngestRecords(raw []map[string]any, idField string) []Record {
	records := make([]Record, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, obj := range raw {
		if obj == nil {
			continue
		}
		fields := make(map[string]string, len(obj))
		for k, v := range obj {
			if s, ok := stringifyScalar(v); ok {
				fields[k] = s
			}
		}
		id := fields[idField]
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		records = append(records, Record{ID: id, Fields: fields})
	}

	return records
}

// stringifyScalar converts a decoded JSON scalar to its string form.
// Returns false for null and for nested structures.
func stringifyScalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case nil:
		return "", false
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprintf("%v", t), true
	}
}

// GeometryKind distinguishes the shapes a record can carry on the site plan.
type GeometryKind string

const (
	// GeometryMarker is a single point.
	GeometryMarker GeometryKind = "marker"
	// GeometryPolygon is a closed outline.
	GeometryPolygon GeometryKind = "polygon"
)

// Geometry places a record on the site plan. Geometries come from a
// separate coordinates dataset joined by record identifier; records
// without geometry are simply not plotted.
type Geometry struct {
	// RecordID links to the Record this geometry belongs to.
	RecordID string

	// Kind is marker or polygon.
	Kind GeometryKind

	// Lat and Lng position a marker.
	Lat float64
	Lng float64

	// Points are the vertices of a polygon as (lat, lng) pairs.
	Points [][2]float64
}
