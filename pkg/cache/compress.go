package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Compressed wraps a Cache and stores values zstd-compressed. Scenes are
// highly repetitive and shrink several times over.
type Compressed struct {
	inner Cache
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewCompressed wraps inner with zstd compression.
func NewCompressed(inner Cache) (*Compressed, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Compressed{inner: inner, enc: enc, dec: dec}, nil
}

// Get decompresses the stored value. Values that fail to decompress are
// deleted and reported as a miss.
func (c *Compressed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	out, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		_ = c.inner.Delete(ctx, key)
		return nil, false, nil
	}
	return out, true, nil
}

// Set compresses data before storing it.
func (c *Compressed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, c.enc.EncodeAll(data, nil), ttl)
}

// Delete removes a value.
func (c *Compressed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close releases the codec and the wrapped cache.
func (c *Compressed) Close() error {
	c.dec.Close()
	err := c.enc.Close()
	if cerr := c.inner.Close(); cerr != nil {
		return cerr
	}
	return err
}

var _ Cache = (*Compressed)(nil)
