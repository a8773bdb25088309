package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/skyline93/gradestat/internal/fs"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var stdin io.Reader = os.Stdin

// Input is the content of an input file.
type Input struct {
	Name    string
	ID      ID
	Content string
}

var (
	allocDec sync.Once
	dec      *zstd.Decoder
)

func getZstdDecoder() *zstd.Decoder {
	allocDec.Do(func() {
		opts := []zstd.DOption{
			// Use all available cores.
			zstd.WithDecoderConcurrency(0),
			// Limit the maximum decompressed memory. Set to a very high,
			// conservative value.
			zstd.WithDecoderMaxMemory(16 * 1024 * 1024 * 1024),
		}

		var err error
		dec, err = zstd.NewReader(nil, opts...)
		if err != nil {
			panic(err)
		}
	})
	return dec
}

// Load reads the whole input selected by cfg into memory. Compressed input
// is decompressed according to cfg.Compression. The content must be valid
// UTF-8.
func Load(ctx context.Context, fsys fs.FS, cfg Config) (*Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.Compression >= CompressionInvalid {
		return nil, errors.New("invalid compression mode")
	}

	var buf []byte
	err := openReader(fsys, cfg, func(rd io.Reader) (ierr error) {
		buf, ierr = io.ReadAll(rd)
		return ierr
	})
	if err != nil {
		return nil, errors.Wrapf(err, "read %v", cfg.Path)
	}

	if decompress(cfg, buf) {
		log.Debugf("decompressing %v (%d bytes)", cfg.Path, len(buf))
		buf, err = getZstdDecoder().DecodeAll(buf, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "decompress %v", cfg.Path)
		}
	}

	if !utf8.Valid(buf) {
		return nil, errors.Errorf("%v is not valid UTF-8 text", cfg.Path)
	}

	in := &Input{
		Name:    cfg.Path,
		ID:      Hash(buf),
		Content: string(buf),
	}
	log.Debugf("loaded %v: %d bytes, id %v", in.Name, len(buf), in.ID.Str())
	return in, nil
}

// openReader calls fn with a reader for the input and closes it afterwards.
func openReader(fsys fs.FS, cfg Config, fn func(rd io.Reader) error) error {
	if cfg.IsStdin() {
		return fn(stdin)
	}

	fi, err := fsys.Stat(cfg.Path)
	if err != nil {
		return err
	}
	if !fs.IsRegularFile(fi) {
		return errors.Errorf("%v is not a regular file", cfg.Path)
	}

	f, err := fsys.Open(cfg.Path)
	if err != nil {
		return err
	}

	err = fn(f)
	if err != nil {
		_ = f.Close() // ignore secondary errors closing the file
		return err
	}
	return f.Close()
}

func decompress(cfg Config, buf []byte) bool {
	switch cfg.Compression {
	case CompressionZstd:
		return true
	case CompressionAuto:
		return strings.HasSuffix(cfg.Path, ".zst") || bytes.HasPrefix(buf, zstdMagic)
	}
	return false
}
