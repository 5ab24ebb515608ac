package domain

// AppSettings is the typed application configuration. Values are stored as
// flat keys in the config store; SettingsService maps between the two and
// fills in defaults for missing or invalid entries.
type AppSettings struct {
	Dataset   DatasetSettings
	Search    SearchSettings
	Facets    FacetSettings
	Auxiliary map[FacetID]AuxiliarySettings
	Snapshot  SnapshotSettings
}

// DatasetSettings locates the primary dataset and the coordinates join.
type DatasetSettings struct {
	// Path is the primary dataset file path or HTTP URL.
	Path string

	// IDField names the record field carrying the unique identifier.
	IDField string

	// CoordinatesPath is the optional geometry dataset for the plan view.
	CoordinatesPath string

	// Watch re-ingests the dataset when the file changes on disk.
	Watch bool
}

// SearchSettings configures free-text matching.
type SearchSettings struct {
	// Fields is the fixed ordered list of searchable record fields.
	Fields []string

	// DebounceMillis delays search recomputation at the input boundary.
	// The engine's SetSearch itself is always synchronous.
	DebounceMillis int
}

// FacetSettings configures which facets a page shows and how.
type FacetSettings struct {
	// Enabled lists the active facet ids in display order.
	Enabled []FacetID

	// MaxMenuItems caps the rows shown per facet menu.
	MaxMenuItems int

	// MaterialField, TypeField, TypeFallbackField and TagsField name the
	// record fields backing the inline facets.
	MaterialField     string
	TypeField         string
	TypeFallbackField string
	TagsField         string
}

// AuxiliarySettings describes one lazily loaded secondary dataset.
type AuxiliarySettings struct {
	// URL is the dataset location (file path or HTTP URL).
	URL string

	// Entity selects the "by_<entity>" envelope key. Empty means the
	// first "by_"-prefixed key found.
	Entity string

	// Field names the per-item field whose values feed the facet.
	Field string
}

// SnapshotSettings configures the best-effort last-filter-state snapshot.
type SnapshotSettings struct {
	// Dir is the snapshot database directory. Empty means the default
	// under the user config dir.
	Dir string

	// Enabled turns snapshot persistence on.
	Enabled bool
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Dataset: DatasetSettings{
			Path:            "data.json",
			IDField:         "inventory_number",
			CoordinatesPath: "",
			Watch:           false,
		},
		Search: SearchSettings{
			Fields: []string{
				"title",
				"description",
				"date",
				"material",
				"inventory_number",
				"object_name",
				"tags",
				"type",
			},
			DebounceMillis: 300,
		},
		Facets: FacetSettings{
			Enabled:           []FacetID{FacetMaterial, FacetType, FacetTags},
			MaxMenuItems:      15,
			MaterialField:     "material",
			TypeField:         "type",
			TypeFallbackField: "object_name",
			TagsField:         "tags",
		},
		Auxiliary: map[FacetID]AuxiliarySettings{},
		Snapshot: SnapshotSettings{
			Enabled: true,
		},
	}
}
