// Package driving defines the interfaces through which user-facing
// adapters (CLI commands, TUI views) drive the core.
//
// View adapters consume the Browser contract only: they subscribe for
// filter-change notifications and issue state mutations. They never read
// or write filter state directly.
//
// Import rules: may import the domain package only, never an adapter.
package driving
