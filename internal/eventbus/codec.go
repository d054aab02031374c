package eventbus

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Значения метаданных encoding
const (
	MetaEncoding     = "encoding"
	EncodingJSON     = "json"
	EncodingZstdJSON = "zstd+json"
)

// Codec сжимает полезную нагрузку событий.
// Encoder и Decoder из zstd безопасны для конкурентного EncodeAll/DecodeAll.
type Codec struct {
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
}

// NewCodec создаёт кодек zstd
func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Codec{compressor: enc, decompressor: dec}, nil
}

// Compress сжимает данные
func (c *Codec) Compress(data []byte) []byte {
	return c.compressor.EncodeAll(data, make([]byte, 0, len(data)))
}

// Decompress распаковывает данные
func (c *Codec) Decompress(data []byte) ([]byte, error) {
	out, err := c.decompressor.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

// Close освобождает ресурсы кодека
func (c *Codec) Close() {
	_ = c.compressor.Close()
	c.decompressor.Close()
}

// payload возвращает несжатую полезную нагрузку envelope
func payload(ev *Envelope, c *Codec) ([]byte, error) {
	switch ev.Metadata[MetaEncoding] {
	case "", EncodingJSON:
		return ev.Payload, nil
	case EncodingZstdJSON:
		if c == nil {
			var err error
			if c, err = NewCodec(); err != nil {
				return nil, err
			}
			defer c.Close()
		}
		return c.Decompress(ev.Payload)
	default:
		return nil, fmt.Errorf("неизвестная кодировка %q", ev.Metadata[MetaEncoding])
	}
}
