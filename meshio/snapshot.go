package meshio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/meshgo"
)

const (
	// snapshotMagic identifies meshgo snapshot files (ASCII: "MSH1").
	snapshotMagic = 0x4D534831
	// snapshotVersion is the current snapshot format version (v1.0.0).
	snapshotVersion = 0x00010000
)

// Snapshot header flags.
const (
	flagIncidence = 1 << iota // incidence map and bounding boxes present
	flagVolume                // memoized volume is valid
	flagTree                  // a kd-tree was built; rebuilt on restore
)

// Allocation bounds for header-declared sizes. The checksum covers only the
// body, so every header field that drives an allocation is validated before
// use.
const (
	maxSnapshotDimension = 1 << 16
	maxSnapshotElements  = 1 << 31
	maxSnapshotBody      = 1 << 31
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrInvalidHeader  = errors.New("invalid header field")
	ErrChecksum       = errors.New("checksum mismatch")
)

// snapshotHeader is the fixed-size little-endian header of a snapshot
// stream. The body that follows is zstd-compressed and covered by the
// checksum.
type snapshotHeader struct {
	Magic        uint32
	Version      uint32
	Dimension    uint32
	Flags        uint32
	NumVertices  uint64
	NumSimplices uint64
	BodyLen      uint64
	Checksum     uint32 // CRC32 (IEEE) of the compressed body
	_            [4]byte
}

// WriteSnapshot persists the mesh and its derived caches as one unit: the
// vertex and simplex sets, the incidence bitmaps, the per-simplex bounding
// boxes, the memoized volume with its validity flag and a marker for the
// kd-tree. A restored mesh answers queries without rebuilding this state.
func WriteSnapshot(w io.Writer, m *meshgo.Mesh) error {
	s := m.Snapshot()

	var body bytes.Buffer
	zw, err := zstd.NewWriter(&body)
	if err != nil {
		return fmt.Errorf("snapshot compressor: %w", err)
	}

	if err := encodeBody(zw, s); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("snapshot compress: %w", err)
	}

	header := snapshotHeader{
		Magic:        snapshotMagic,
		Version:      snapshotVersion,
		Dimension:    uint32(s.Dimension),
		NumVertices:  uint64(len(s.Vertices)),
		NumSimplices: uint64(len(s.Simplices)),
		BodyLen:      uint64(body.Len()),
		Checksum:     crc32.ChecksumIEEE(body.Bytes()),
	}
	if s.Incidence != nil {
		header.Flags |= flagIncidence
	}
	if s.VolumeValid {
		header.Flags |= flagVolume
	}
	if s.TreeBuilt {
		header.Flags |= flagTree
	}

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("write snapshot body: %w", err)
	}
	return nil
}

// ReadSnapshot restores a mesh from a snapshot stream.
func ReadSnapshot(r io.Reader, optFns ...func(*Options)) (*meshgo.Mesh, error) {
	opts := resolveOptions(optFns)

	var header snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}
	if header.Dimension == 0 || header.Dimension > maxSnapshotDimension {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidHeader, header.Dimension)
	}
	if header.NumVertices > maxSnapshotElements || header.NumSimplices > maxSnapshotElements {
		return nil, fmt.Errorf("%w: %d vertices, %d simplices",
			ErrInvalidHeader, header.NumVertices, header.NumSimplices)
	}
	if header.BodyLen > maxSnapshotBody {
		return nil, fmt.Errorf("%w: body length %d", ErrInvalidHeader, header.BodyLen)
	}

	body := make([]byte, header.BodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}
	if crc32.ChecksumIEEE(body) != header.Checksum {
		return nil, ErrChecksum
	}

	zr, err := zstd.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("snapshot decompressor: %w", err)
	}
	defer zr.Close()

	s := &meshgo.Snapshot{
		Dimension:   int(header.Dimension),
		VolumeValid: header.Flags&flagVolume != 0,
		TreeBuilt:   header.Flags&flagTree != 0,
	}
	if err := decodeBody(zr, s, &header); err != nil {
		return nil, err
	}

	mesh, err := meshgo.Restore(s, opts.MeshOptions...)
	if err != nil {
		return nil, err
	}

	opts.Logger.LogImport(mesh.NumVertices(), mesh.NumSimplices(), nil)
	return mesh, nil
}

// WriteSnapshotFile persists the mesh to a snapshot file.
func WriteSnapshotFile(path string, m *meshgo.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open snapshot file: %w", err)
	}

	if err := WriteSnapshot(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSnapshotFile restores a mesh from a snapshot file.
func ReadSnapshotFile(path string, optFns ...func(*Options)) (*meshgo.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()

	return ReadSnapshot(f, optFns...)
}

func encodeBody(w io.Writer, s *meshgo.Snapshot) error {
	for _, v := range s.Vertices {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write vertices: %w", err)
		}
	}

	for _, simplex := range s.Simplices {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(simplex))); err != nil {
			return fmt.Errorf("write simplices: %w", err)
		}
		for _, index := range simplex {
			if err := binary.Write(w, binary.LittleEndian, int64(index)); err != nil {
				return fmt.Errorf("write simplices: %w", err)
			}
		}
	}

	if s.Incidence != nil {
		for _, box := range s.LowerBoxes {
			if err := binary.Write(w, binary.LittleEndian, box); err != nil {
				return fmt.Errorf("write bounding boxes: %w", err)
			}
		}
		for _, box := range s.UpperBoxes {
			if err := binary.Write(w, binary.LittleEndian, box); err != nil {
				return fmt.Errorf("write bounding boxes: %w", err)
			}
		}
		for _, bitmap := range s.Incidence {
			buf, err := bitmap.ToBytes()
			if err != nil {
				return fmt.Errorf("serialize incidence: %w", err)
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(len(buf))); err != nil {
				return fmt.Errorf("write incidence: %w", err)
			}
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("write incidence: %w", err)
			}
		}
	}

	if err := binary.Write(w, binary.LittleEndian, s.Volume); err != nil {
		return fmt.Errorf("write volume: %w", err)
	}
	return nil
}

func decodeBody(r io.Reader, s *meshgo.Snapshot, header *snapshotHeader) error {
	dimension := int(header.Dimension)

	s.Vertices = make([][]float64, header.NumVertices)
	for i := range s.Vertices {
		v := make([]float64, dimension)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("read vertices: %w", err)
		}
		s.Vertices[i] = v
	}

	s.Simplices = make([][]int, header.NumSimplices)
	for i := range s.Simplices {
		var arity uint32
		if err := binary.Read(r, binary.LittleEndian, &arity); err != nil {
			return fmt.Errorf("read simplices: %w", err)
		}
		if arity > maxSnapshotDimension+1 {
			return fmt.Errorf("read simplices: arity %d out of range", arity)
		}
		simplex := make([]int, arity)
		for k := range simplex {
			var index int64
			if err := binary.Read(r, binary.LittleEndian, &index); err != nil {
				return fmt.Errorf("read simplices: %w", err)
			}
			simplex[k] = int(index)
		}
		s.Simplices[i] = simplex
	}

	if header.Flags&flagIncidence != 0 {
		s.LowerBoxes = make([][]float64, header.NumSimplices)
		for i := range s.LowerBoxes {
			box := make([]float64, dimension)
			if err := binary.Read(r, binary.LittleEndian, box); err != nil {
				return fmt.Errorf("read bounding boxes: %w", err)
			}
			s.LowerBoxes[i] = box
		}
		s.UpperBoxes = make([][]float64, header.NumSimplices)
		for i := range s.UpperBoxes {
			box := make([]float64, dimension)
			if err := binary.Read(r, binary.LittleEndian, box); err != nil {
				return fmt.Errorf("read bounding boxes: %w", err)
			}
			s.UpperBoxes[i] = box
		}
		s.Incidence = make([]*roaring.Bitmap, header.NumVertices)
		for i := range s.Incidence {
			var size uint32
			if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
				return fmt.Errorf("read incidence: %w", err)
			}
			if size > maxSnapshotBody {
				return fmt.Errorf("read incidence: bitmap size %d out of range", size)
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(r, buf); err != nil {
				return fmt.Errorf("read incidence: %w", err)
			}
			bitmap := roaring.New()
			if _, err := bitmap.FromBuffer(buf); err != nil {
				return fmt.Errorf("deserialize incidence: %w", err)
			}
			s.Incidence[i] = bitmap
		}
	}

	if err := binary.Read(r, binary.LittleEndian, &s.Volume); err != nil {
		return fmt.Errorf("read volume: %w", err)
	}
	return nil
}
