// Package msio reads Hudson ms simulation output and genetic map tables.
package msio
