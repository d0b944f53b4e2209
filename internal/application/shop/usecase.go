// Package shop administra la configuración de la tienda. El contador de
// facturación se expone de solo lectura: únicamente el protocolo de
// liquidación lo avanza.
package shop

import (
	"time"

	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

// UseCase casos de uso de configuración.
type UseCase struct {
	repo repository.SettingsRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.SettingsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devuelve la configuración vigente (o los valores por defecto).
func (uc *UseCase) Get() (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

// Update aplica una actualización parcial. No toca InvoiceCounter.
func (uc *UseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if in.ShopName != nil {
		if *in.ShopName == "" {
			return nil, domain.ErrInvalidInput
		}
		s.ShopName = *in.ShopName
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.GSTNumber != nil {
		s.GSTNumber = *in.GSTNumber
	}
	if in.UPIID != nil {
		s.UPIID = *in.UPIID
	}
	if in.InvoicePrefix != nil {
		s.InvoicePrefix = *in.InvoicePrefix
	}
	if in.PaperSize != nil {
		if *in.PaperSize != entity.PaperThermal && *in.PaperSize != entity.PaperA4 {
			return nil, domain.ErrInvalidInput
		}
		s.PaperSize = *in.PaperSize
	}
	if in.Currency != nil {
		if *in.Currency == "" {
			return nil, domain.ErrInvalidInput
		}
		s.Currency = *in.Currency
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Save(s); err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

func toResponse(s *entity.ShopSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		ShopName:       s.ShopName,
		Address:        s.Address,
		Phone:          s.Phone,
		Email:          s.Email,
		GSTNumber:      s.GSTNumber,
		UPIID:          s.UPIID,
		InvoicePrefix:  s.InvoicePrefix,
		InvoiceCounter: s.InvoiceCounter,
		PaperSize:      s.PaperSize,
		Currency:       s.Currency,
	}
}
