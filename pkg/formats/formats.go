// Package formats provides readers and writers for geometry cache formats.
package formats
