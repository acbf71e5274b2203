// Package migrations holds the schema migrations. Each migration registers
// itself from init(); importing the package is enough to make them visible
// to the migrate commands.
package migrations
