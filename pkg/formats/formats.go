// Package formats provides encoders and parsers for exported terrain meshes.
package formats

// Note: TMSH (binary terrain mesh) is implemented in tmsh.go
// Note: OBJ (Wavefront text export) is implemented in obj.go
