package huffrz

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache memoizes compressed archives for callers that hand identical
// payloads to Compress repeatedly. The codec itself stays stateless;
// this is strictly a caller-side layer and is safe for concurrent use.
type Cache struct {
	archives *lru.Cache[string, []byte]
	opts     []Option
}

// NewCache returns a Cache holding at most size archives, compressing
// misses with the given options.
func NewCache(size int, opts ...Option) (*Cache, error) {
	archives, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cache{archives: archives, opts: opts}, nil
}

// Compress returns the archive for data, reusing a cached result when
// the same payload was compressed before. The returned slice is the
// caller's to keep.
func (c *Cache) Compress(data []byte) ([]byte, error) {
	key := string(data)
	if archive, ok := c.archives.Get(key); ok {
		return append([]byte(nil), archive...), nil
	}

	archive, err := Compress(data, c.opts...)
	if err != nil {
		return nil, err
	}
	c.archives.Add(key, archive)
	return append([]byte(nil), archive...), nil
}

// Len reports how many archives are currently cached.
func (c *Cache) Len() int { return c.archives.Len() }
