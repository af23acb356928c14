// Package types defines the entity types, configuration, collaborator
// contracts, and standard errors for the songvault catalog store.
package types
