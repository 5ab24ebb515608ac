// Package domain contains the core types of the exhibit browser:
// catalogue records, facet definitions, filter state and its serializable
// snapshot form. Types here carry no dependencies on adapters or services.
package domain
