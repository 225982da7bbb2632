package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/salespoint/orderadmin/internal/domain"
)

// ConfigManager reads runtime-tunable settings from the sys_config table
// with a short in-process cache, so tuning (currency precision, retention)
// takes effect without a restart.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	cache    map[string]string
	cachedAt time.Time
	ttl      time.Duration
}

func NewConfigManager(a *Application) *ConfigManager {
	return &ConfigManager{
		app:   a,
		cache: make(map[string]string),
		ttl:   30 * time.Second,
	}
}

func settingsKey(category, name string) string {
	return category + "." + name
}

func (m *ConfigManager) reloadLocked() {
	var rows []domain.SysConfig
	if err := m.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load sys_config", zap.Error(err))
		return
	}
	m.cache = make(map[string]string, len(rows))
	for _, row := range rows {
		m.cache[settingsKey(row.Type, row.Name)] = row.Value
	}
	m.cachedAt = time.Now()
}

func (m *ConfigManager) value(category, name string) string {
	m.mu.RLock()
	fresh := time.Since(m.cachedAt) < m.ttl
	v, ok := m.cache[settingsKey(category, name)]
	m.mu.RUnlock()
	if fresh && ok {
		return v
	}

	m.mu.Lock()
	if time.Since(m.cachedAt) >= m.ttl {
		m.reloadLocked()
	}
	v = m.cache[settingsKey(category, name)]
	m.mu.Unlock()
	return v
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.value(category, name)
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.value(category, name))
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.value(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.value(category, name))
}

// Save persists a batch of settings keyed "category.name" and invalidates
// the cache.
func (m *ConfigManager) Save(settings map[string]interface{}) error {
	for key, val := range settings {
		parts := strings.SplitN(key, ".", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid settings key %q", key)
		}
		err := m.app.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", parts[0], parts[1]).
			Updates(map[string]interface{}{
				"value":      cast.ToString(val),
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.cachedAt = time.Time{}
	m.mu.Unlock()
	return nil
}
