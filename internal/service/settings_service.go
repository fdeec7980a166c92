package service

import (
	"notepocket/internal/dto"
	"notepocket/internal/entity"
	"notepocket/internal/store"
)

type ISettingsService interface {
	GetTheme() *dto.ThemeResponse
	SetTheme(req *dto.UpdateThemeRequest) (*dto.ThemeResponse, error)
	GetLanguage() *dto.LanguageResponse
	SetLanguage(req *dto.UpdateLanguageRequest) (*dto.LanguageResponse, error)
}

type settingsService struct {
	theme    *store.ThemeStore
	language *store.LanguageStore
}

func NewSettingsService(theme *store.ThemeStore, language *store.LanguageStore) ISettingsService {
	return &settingsService{
		theme:    theme,
		language: language,
	}
}

func (s *settingsService) GetTheme() *dto.ThemeResponse {
	return &dto.ThemeResponse{
		Appearance: string(s.theme.Appearance()),
		ThemeId:    string(s.theme.ThemeId()),
	}
}

func (s *settingsService) SetTheme(req *dto.UpdateThemeRequest) (*dto.ThemeResponse, error) {
	if err := s.theme.SetAppearance(entity.Appearance(req.Appearance)); err != nil {
		return nil, err
	}
	return s.GetTheme(), nil
}

func (s *settingsService) GetLanguage() *dto.LanguageResponse {
	return &dto.LanguageResponse{
		Language: string(s.language.Language()),
	}
}

func (s *settingsService) SetLanguage(req *dto.UpdateLanguageRequest) (*dto.LanguageResponse, error) {
	if err := s.language.SetLanguage(entity.Language(req.Language)); err != nil {
		return nil, err
	}
	return s.GetLanguage(), nil
}
