package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/steelcat/catalog"
	"github.com/hupe1980/steelcat/codec"
	"github.com/hupe1980/steelcat/property"
)

const (
	// magicNumber identifies steelcat snapshot files (ASCII: "SCAT").
	magicNumber = 0x53434154
	// version is the current snapshot format version.
	version = 1
)

var (
	// ErrInvalidMagic is returned when the file is not a steelcat snapshot.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for snapshot versions this build cannot read.
	ErrInvalidVersion = errors.New("unsupported snapshot version")
	// ErrChecksum is returned when the payload checksum does not match.
	ErrChecksum = errors.New("snapshot checksum mismatch")
)

// Compression selects the payload compression.
type Compression string

const (
	// CompressionZstd is the default: good ratio, fast decode.
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 trades ratio for faster encode.
	CompressionLZ4 Compression = "lz4"
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = "none"
)

type options struct {
	codec       codec.Codec
	compression Compression
	logger      *slog.Logger
}

// Option configures snapshot save/load behavior.
type Option func(*options)

// WithCodec configures the payload codec. Snapshots are self-describing, so
// this only affects newly written files. If nil is passed, codec.Default is
// used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression for newly written
// files. Reading selects the decompressor from the file header.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger configures the logger. If nil is passed, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// fileModel is the codec-encoded snapshot payload.
type fileModel struct {
	Separator byte        `json:"separator"`
	Supported []string    `json:"supported"`
	Types     []typeModel `json:"types"`
}

type typeModel struct {
	Tag          string                     `json:"tag"`
	Designations []string                   `json:"designations"`
	Records      map[string]property.Record `json:"records"`
}

// Save writes the catalog to a single snapshot file. The write goes through
// a temp file and an atomic rename, so a concurrent reader never observes a
// partial snapshot.
func Save(path string, cat *catalog.Catalog, optFns ...Option) error {
	opts := options{
		codec:       codec.Default,
		compression: CompressionZstd,
		logger:      slog.Default(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	model := fileModel{
		Separator: cat.Separator(),
	}
	for _, st := range cat.SupportedTypes() {
		model.Supported = append(model.Supported, st.String())
	}
	for _, st := range cat.SupportedTypes() {
		if !cat.Loaded(st) {
			continue
		}
		tm := typeModel{
			Tag:          st.String(),
			Designations: cat.List(st),
			Records:      make(map[string]property.Record, len(cat.List(st))),
		}
		for _, d := range tm.Designations {
			rec, _ := cat.Get(st, d)
			tm.Records[d] = rec
		}
		model.Types = append(model.Types, tm)
	}

	payload, err := opts.codec.Marshal(model)
	if err != nil {
		return fmt.Errorf("snapshot: encode payload: %w", err)
	}

	compressed, err := compress(payload, opts.compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress payload: %w", err)
	}

	var buf bytes.Buffer
	if err := writeHeader(&buf, opts.codec.Name(), string(opts.compression), compressed); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	buf.Write(compressed)

	tmp := path + ".tmp"
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create directory: %w", err)
		}
	}
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("snapshot: rename %s: %w", tmp, err)
	}

	opts.logger.Info("snapshot saved",
		"path", path,
		"types", len(model.Types),
		"bytes", buf.Len(),
	)
	return nil
}

// Load restores a fresh catalog from a snapshot file. The restored catalog
// behaves exactly like a source-loaded one except that Reload is a no-op.
func Load(path string, optFns ...Option) (*catalog.Catalog, error) {
	opts := options{logger: slog.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}

	codecName, compName, compressed, err := readHeader(raw)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown codec %q", codecName)
	}

	payload, err := decompress(compressed, Compression(compName))
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress payload: %w", err)
	}

	var model fileModel
	if err := c.Unmarshal(payload, &model); err != nil {
		return nil, fmt.Errorf("snapshot: decode payload: %w", err)
	}

	supported := make([]catalog.SectionType, len(model.Supported))
	for i, tag := range model.Supported {
		supported[i] = catalog.SectionType(tag)
	}

	sets := make(map[catalog.SectionType]*catalog.RecordSet, len(model.Types))
	for _, tm := range model.Types {
		sets[catalog.SectionType(tm.Tag)] = catalog.NewRecordSet(tm.Designations, tm.Records)
	}

	opts.logger.Debug("snapshot restored",
		"path", path,
		"types", len(sets),
	)
	return catalog.Rebuild(supported, model.Separator, sets), nil
}

// Header layout: magic u32 | version u32 | codec name (u8 len + bytes) |
// compression name (u8 len + bytes) | payload crc32 u32 | payload len u64.
// All integers big-endian.

func writeHeader(w io.Writer, codecName, compName string, payload []byte) error {
	if err := binary.Write(w, binary.BigEndian, uint32(magicNumber)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(version)); err != nil {
		return err
	}
	for _, name := range []string{codecName, compName} {
		if len(name) > 255 {
			return fmt.Errorf("name too long: %q", name)
		}
		if err := binary.Write(w, binary.BigEndian, uint8(len(name))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(name)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, crc32.ChecksumIEEE(payload)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, uint64(len(payload)))
}

func readHeader(raw []byte) (codecName, compName string, payload []byte, err error) {
	r := bytes.NewReader(raw)

	var magic, ver uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return "", "", nil, fmt.Errorf("snapshot: read magic: %w", err)
	}
	if magic != magicNumber {
		return "", "", nil, ErrInvalidMagic
	}
	if err := binary.Read(r, binary.BigEndian, &ver); err != nil {
		return "", "", nil, fmt.Errorf("snapshot: read version: %w", err)
	}
	if ver != version {
		return "", "", nil, fmt.Errorf("%w: %d", ErrInvalidVersion, ver)
	}

	names := make([]string, 2)
	for i := range names {
		var n uint8
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return "", "", nil, fmt.Errorf("snapshot: read name length: %w", err)
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", "", nil, fmt.Errorf("snapshot: read name: %w", err)
		}
		names[i] = string(buf)
	}

	var sum uint32
	var size uint64
	if err := binary.Read(r, binary.BigEndian, &sum); err != nil {
		return "", "", nil, fmt.Errorf("snapshot: read checksum: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return "", "", nil, fmt.Errorf("snapshot: read payload length: %w", err)
	}

	payload = make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", "", nil, fmt.Errorf("snapshot: read payload: %w", err)
	}
	if crc32.ChecksumIEEE(payload) != sum {
		return "", "", nil, ErrChecksum
	}

	return names[0], names[1], payload, nil
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("unknown compression %q", c)
	}
}
