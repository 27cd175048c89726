// Package codec compresses and decompresses record batches carried over
// the wire by a partitioned commit-log broker. Real brokers negotiate a
// codec per batch. The simulated handle in pkg/broker uses Compress when a
// record is produced with ProduceCompressed and returns the value still
// compressed from Poll; decompressing it with Decompress is left to the
// consumer.
package codec

import (
	"bytes"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Codec identifies the compression algorithm a batch was encoded with.
type Codec byte

const (
	None Codec = iota
	Gzip
	Snappy
	LZ4
	Zstd
)

// Decompress returns the uncompressed bytes of data, which was encoded
// with the algorithm c.
func Decompress(c Codec, data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "codec: open gzip reader")
		}
		defer r.Close()
		return readAll(r)
	case Snappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, "codec: snappy decode")
		}
		return out, nil
	case LZ4:
		return readAll(lz4.NewReader(bytes.NewReader(data)))
	case Zstd:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "codec: open zstd reader")
		}
		defer dec.Close()
		return readAll(dec)
	default:
		return nil, errors.Errorf("codec: unknown batch codec %d", c)
	}
}

// Compress encodes data with c, for tests and the demo driver that need to
// produce a batch in a specific codec rather than consume one.
func Compress(c Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	switch c {
	case None:
		return data, nil
	case Gzip:
		w := gzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, "codec: gzip write")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "codec: gzip close")
		}
	case Snappy:
		return snappy.Encode(nil, data), nil
	case LZ4:
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, "codec: lz4 write")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "codec: lz4 close")
		}
	case Zstd:
		w, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, errors.Wrap(err, "codec: open zstd writer")
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrap(err, "codec: zstd write")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "codec: zstd close")
		}
	default:
		return nil, errors.Errorf("codec: unknown batch codec %d", c)
	}
	return buf.Bytes(), nil
}

func readAll(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "codec: read decompressed batch")
	}
	return out, nil
}
