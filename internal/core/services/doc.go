// Package services implements the core application logic: the faceted
// filter engine with its posting-list index, the notification bridge that
// keeps independent views consistent, the facet registry, the filter-state
// query codec, and typed settings over the config store.
//
// The engine is headless by design: it takes a dataset and filter state
// and produces filtered records plus facet counts. Rendering subscribes
// through the bridge and lives entirely in adapters.
package services
