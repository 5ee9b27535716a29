package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// TMSH format errors.
var (
	ErrInvalidTMSHMagic       = errors.New("invalid TMSH magic: expected 'TMSH'")
	ErrUnsupportedTMSHVersion = errors.New("unsupported TMSH version")
	ErrTruncatedTMSHData      = errors.New("truncated TMSH data")
	ErrInvalidTMSHIndex       = errors.New("invalid TMSH index")
)

const (
	tmshMagic      = "TMSH"
	tmshHeaderSize = 4 + 4 + 4*4 + 6*4

	tmshFlagNormals = 1 << 0
)

// TMSHVersion represents the TMSH file version.
type TMSHVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TMSHVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentTMSHVersion is the version written by Encode.
var CurrentTMSHVersion = TMSHVersion{Major: 1, Minor: 0}

// TMSH is a triangle mesh as stored on disk.
//
// Layout (little-endian):
//
//	"TMSH" major minor flags reserved
//	vertexCount indexCount patchCount patchVertexCount  (uint32)
//	boundsMin[3] boundsMax[3]                           (float32)
//	vertices[vertexCount][3]                            (float32)
//	normals[vertexCount][3]  if flags&1                 (float32)
//	indices[indexCount]                                 (uint32)
type TMSH struct {
	Version          TMSHVersion
	PatchCount       uint32
	PatchVertexCount uint32
	BoundsMin        [3]float32
	BoundsMax        [3]float32
	Vertices         [][3]float32
	Normals          [][3]float32 // nil or len(Vertices)
	Indices          []uint32
}

// TriangleCount returns the number of triangles.
func (m *TMSH) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks index range and normal count.
func (m *TMSH) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidTMSHIndex, len(m.Indices))
	}
	if m.Normals != nil && len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("normal count %d does not match vertex count %d", len(m.Normals), len(m.Vertices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d = %d, vertex count %d", ErrInvalidTMSHIndex, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// Encode serializes the mesh with the current version.
func (m *TMSH) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.EncodeTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo serializes the mesh to w.
func (m *TMSH) EncodeTo(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var flags uint8
	if m.Normals != nil {
		flags |= tmshFlagNormals
	}

	if _, err := io.WriteString(w, tmshMagic); err != nil {
		return err
	}
	header := []any{
		[4]uint8{CurrentTMSHVersion.Major, CurrentTMSHVersion.Minor, flags, 0},
		uint32(len(m.Vertices)),
		uint32(len(m.Indices)),
		m.PatchCount,
		m.PatchVertexCount,
		m.BoundsMin,
		m.BoundsMax,
	}
	for _, field := range header {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, m.Vertices); err != nil {
		return fmt.Errorf("writing vertices: %w", err)
	}
	if m.Normals != nil {
		if err := binary.Write(w, binary.LittleEndian, m.Normals); err != nil {
			return fmt.Errorf("writing normals: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, m.Indices); err != nil {
		return fmt.Errorf("writing indices: %w", err)
	}
	return nil
}

// SaveTMSH writes the mesh to path.
func SaveTMSH(path string, m *TMSH) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTMSH reads and parses a TMSH file.
func LoadTMSH(path string) (*TMSH, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTMSH(data)
}

// ParseTMSH parses a TMSH file from raw bytes.
func ParseTMSH(data []byte) (*TMSH, error) {
	if len(data) < tmshHeaderSize {
		return nil, ErrTruncatedTMSHData
	}

	if string(data[0:4]) != tmshMagic {
		return nil, ErrInvalidTMSHMagic
	}

	version := TMSHVersion{Major: data[4], Minor: data[5]}
	if version.Major != CurrentTMSHVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTMSHVersion, version)
	}
	flags := data[6]

	r := bytes.NewReader(data[8:])

	var counts [4]uint32
	if err := binary.Read(r, binary.LittleEndian, &counts); err != nil {
		return nil, fmt.Errorf("%w: reading counts", ErrTruncatedTMSHData)
	}
	vertexCount, indexCount := counts[0], counts[1]

	m := &TMSH{
		Version:          version,
		PatchCount:       counts[2],
		PatchVertexCount: counts[3],
	}
	if err := binary.Read(r, binary.LittleEndian, &m.BoundsMin); err != nil {
		return nil, fmt.Errorf("%w: reading bounds", ErrTruncatedTMSHData)
	}
	if err := binary.Read(r, binary.LittleEndian, &m.BoundsMax); err != nil {
		return nil, fmt.Errorf("%w: reading bounds", ErrTruncatedTMSHData)
	}

	// Check the payload size before allocating from untrusted counts.
	need := uint64(vertexCount)*12 + uint64(indexCount)*4
	if flags&tmshFlagNormals != 0 {
		need += uint64(vertexCount) * 12
	}
	if uint64(r.Len()) < need {
		return nil, fmt.Errorf("%w: need %d payload bytes, have %d", ErrTruncatedTMSHData, need, r.Len())
	}

	m.Vertices = make([][3]float32, vertexCount)
	if err := binary.Read(r, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedTMSHData)
	}
	if flags&tmshFlagNormals != 0 {
		m.Normals = make([][3]float32, vertexCount)
		if err := binary.Read(r, binary.LittleEndian, m.Normals); err != nil {
			return nil, fmt.Errorf("%w: reading normals", ErrTruncatedTMSHData)
		}
	}
	m.Indices = make([]uint32, indexCount)
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedTMSHData)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
