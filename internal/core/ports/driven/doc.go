// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// Required for a page to function:
//
//   - RecordSource: loads the primary dataset (fatal when unavailable)
//   - ConfigStore: application configuration
//
// Optional - the application degrades gracefully without them:
//
//   - GeometrySource: site-plan geometry join (plan view stays empty)
//   - AuxiliaryLoader: secondary datasets (externally-sourced facets show
//     no values until loaded, and never block)
//   - SnapshotStore: best-effort last-filter-state persistence
//
// Import rules: may import the domain package only, never an adapter.
package driven
