package memory

import (
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*settingsRepo)(nil)

type settingsRepo struct {
	s *Store
}

func (r *settingsRepo) Get() (*entity.ShopSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.hasSettings {
		def := entity.DefaultSettings()
		return &def, nil
	}
	cp := r.s.settings
	return &cp, nil
}

func (r *settingsRepo) GetForUpdate() (*entity.ShopSettings, error) {
	return r.Get()
}

func (r *settingsRepo) Save(settings *entity.ShopSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings = *settings
	r.s.hasSettings = true
	return nil
}
