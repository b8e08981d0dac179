package devotional

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrFallbackContent is returned when a caller tries to cache placeholder
// content. Fallbacks are transient so the next load retries generation.
var ErrFallbackContent = errors.New("fallback content is never cached")

const (
	dailyCacheFile = "devotional_daily_v1.json"
	notifFlagFile  = "devotional_notif_enabled.json"
)

// Cache is the device-local store for the daily envelope and the
// notification preference flag. An envelope stamped with any date other than
// today (in the reference timezone) is a miss, as is any unreadable file.
type Cache struct {
	dir string
	loc *time.Location
	now func() time.Time
	mu  sync.Mutex
}

func NewCache(dir string, loc *time.Location) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &Cache{dir: dir, loc: loc, now: time.Now}, nil
}

func (c *Cache) GetDaily() *DevotionalContent {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(c.dir, dailyCacheFile))
	if err != nil {
		return nil
	}

	var stored StoredDevotional
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Corrupt cache is a miss, not an error.
		return nil
	}
	if stored.Date != DateKey(c.now(), c.loc) {
		return nil
	}

	content := stored.Content
	return &content
}

func (c *Cache) SaveDaily(content DevotionalContent) error {
	if content.IsFallback {
		return ErrFallbackContent
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored := StoredDevotional{
		Date:    DateKey(c.now(), c.loc),
		Content: content,
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(c.dir, dailyCacheFile), data)
}

func (c *Cache) NotificationsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(c.dir, notifFlagFile))
	if err != nil {
		return false
	}
	var enabled bool
	if err := json.Unmarshal(raw, &enabled); err != nil {
		return false
	}
	return enabled
}

func (c *Cache) SetNotificationsEnabled(enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(enabled)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(c.dir, notifFlagFile), data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
