package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"
)

// createTestTMSH returns a unit quad split into two triangles.
func createTestTMSH(withNormals bool) *TMSH {
	m := &TMSH{
		Version:          CurrentTMSHVersion,
		PatchCount:       1,
		PatchVertexCount: 4,
		BoundsMin:        [3]float32{0, 0, 0},
		BoundsMax:        [3]float32{1, 0.5, 1},
		Vertices: [][3]float32{
			{0, 0, 0},
			{0, 0, 1},
			{1, 0.5, 0},
			{1, 0.5, 1},
		},
		Indices: []uint32{0, 1, 2, 2, 1, 3},
	}
	if withNormals {
		m.Normals = [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}}
	}
	return m
}

func TestTMSHRoundTrip(t *testing.T) {
	for _, withNormals := range []bool{false, true} {
		src := createTestTMSH(withNormals)
		data, err := src.Encode()
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		got, err := ParseTMSH(data)
		if err != nil {
			t.Fatalf("ParseTMSH failed: %v", err)
		}

		if got.Version != CurrentTMSHVersion {
			t.Errorf("expected version %s, got %s", CurrentTMSHVersion, got.Version)
		}
		if got.PatchCount != 1 || got.PatchVertexCount != 4 {
			t.Errorf("patch layout: got %d x %d", got.PatchCount, got.PatchVertexCount)
		}
		if got.BoundsMax != src.BoundsMax {
			t.Errorf("bounds max: got %v, want %v", got.BoundsMax, src.BoundsMax)
		}
		if len(got.Vertices) != 4 || got.Vertices[2] != src.Vertices[2] {
			t.Errorf("vertices: got %v", got.Vertices)
		}
		if len(got.Indices) != 6 || got.Indices[5] != 3 {
			t.Errorf("indices: got %v", got.Indices)
		}
		if withNormals != (got.Normals != nil) {
			t.Errorf("normals present = %v, want %v", got.Normals != nil, withNormals)
		}
	}
}

func TestTMSHHeaderLayout(t *testing.T) {
	data, err := createTestTMSH(true).Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if string(data[0:4]) != "TMSH" {
		t.Errorf("magic: got %q", data[0:4])
	}
	if data[4] != 1 || data[5] != 0 {
		t.Errorf("version: got %d.%d", data[4], data[5])
	}
	if data[6]&tmshFlagNormals == 0 {
		t.Error("normals flag not set")
	}
	if n := binary.LittleEndian.Uint32(data[8:12]); n != 4 {
		t.Errorf("vertex count: got %d", n)
	}

	want := tmshHeaderSize + 4*12 + 4*12 + 6*4
	if len(data) != want {
		t.Errorf("expected %d bytes, got %d", want, len(data))
	}
}

func TestParseTMSH_InvalidMagic(t *testing.T) {
	data, _ := createTestTMSH(false).Encode()
	copy(data, "XXXX")

	if _, err := ParseTMSH(data); !errors.Is(err, ErrInvalidTMSHMagic) {
		t.Errorf("expected ErrInvalidTMSHMagic, got %v", err)
	}
}

func TestParseTMSH_UnsupportedVersion(t *testing.T) {
	data, _ := createTestTMSH(false).Encode()
	data[4] = 2

	if _, err := ParseTMSH(data); !errors.Is(err, ErrUnsupportedTMSHVersion) {
		t.Errorf("expected ErrUnsupportedTMSHVersion, got %v", err)
	}
}

func TestParseTMSH_Truncated(t *testing.T) {
	data, _ := createTestTMSH(true).Encode()

	for _, n := range []int{0, 10, tmshHeaderSize, len(data) - 1} {
		if _, err := ParseTMSH(data[:n]); !errors.Is(err, ErrTruncatedTMSHData) {
			t.Errorf("%d bytes: expected ErrTruncatedTMSHData, got %v", n, err)
		}
	}
}

func TestParseTMSH_HugeCounts(t *testing.T) {
	data, _ := createTestTMSH(false).Encode()
	binary.LittleEndian.PutUint32(data[8:12], 0xFFFFFFFF)

	if _, err := ParseTMSH(data); !errors.Is(err, ErrTruncatedTMSHData) {
		t.Errorf("expected ErrTruncatedTMSHData, got %v", err)
	}
}

func TestParseTMSH_IndexOutOfRange(t *testing.T) {
	data, _ := createTestTMSH(false).Encode()
	// Last index sits at the end of the file.
	binary.LittleEndian.PutUint32(data[len(data)-4:], 9)

	if _, err := ParseTMSH(data); !errors.Is(err, ErrInvalidTMSHIndex) {
		t.Errorf("expected ErrInvalidTMSHIndex, got %v", err)
	}
}

func TestEncodeRejectsInvalidMesh(t *testing.T) {
	m := createTestTMSH(false)
	m.Indices = append(m.Indices, 1)
	if _, err := m.Encode(); !errors.Is(err, ErrInvalidTMSHIndex) {
		t.Errorf("expected ErrInvalidTMSHIndex, got %v", err)
	}

	m = createTestTMSH(true)
	m.Normals = m.Normals[:2]
	if _, err := m.Encode(); err == nil {
		t.Error("expected error for mismatched normal count")
	}
}

func TestSaveLoadTMSH(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrain.tmsh")
	src := createTestTMSH(true)

	if err := SaveTMSH(path, src); err != nil {
		t.Fatalf("SaveTMSH failed: %v", err)
	}
	got, err := LoadTMSH(path)
	if err != nil {
		t.Fatalf("LoadTMSH failed: %v", err)
	}
	if got.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", got.TriangleCount())
	}

	if _, err := LoadTMSH(filepath.Join(t.TempDir(), "missing.tmsh")); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestEncodeToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := createTestTMSH(false).EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}
	if buf.Len() != tmshHeaderSize+4*12+6*4 {
		t.Errorf("unexpected encoded size %d", buf.Len())
	}
}
