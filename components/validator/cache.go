package validator

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-formcheck/pkg/engine"
)

// reportCache memoises reports by request digest. A nil cache never hits.
type reportCache struct {
	lru *lru.Cache[string, engine.Report]
}

func newReportCache(size int) (*reportCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, engine.Report](size)
	if err != nil {
		return nil, err
	}
	return &reportCache{lru: c}, nil
}

func (c *reportCache) get(key string) (engine.Report, bool) {
	if c == nil {
		return engine.Report{}, false
	}
	return c.lru.Get(key)
}

func (c *reportCache) add(key string, report engine.Report) {
	if c == nil {
		return
	}
	c.lru.Add(key, report)
}

func (c *reportCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// cacheKey digests the payload together with every option that changes the
// report.
func cacheKey(body []byte, opts engine.Options) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte{0})
	h.Write([]byte(opts.Mode))
	h.Write([]byte{0, boolByte(opts.AutoFix)})
	h.Write([]byte(strconv.Itoa(opts.MaxTopLevelFields) + ":" + strconv.Itoa(opts.MaxLookupFields)))
	return hex.EncodeToString(h.Sum(nil))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
