package github

import "sync"

// cache keeps immutable payloads for the lifetime of the process.
type cache struct {
	mu      sync.RWMutex
	jobLogs map[int64]string
}

func newCache() *cache {
	return &cache{jobLogs: make(map[int64]string)}
}

func (c *cache) jobLog(id int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.jobLogs[id]
	return text, ok
}

func (c *cache) storeJobLog(id int64, text string) {
	c.mu.Lock()
	c.jobLogs[id] = text
	c.mu.Unlock()
}
