package dto

type ThemeResponse struct {
	Appearance string `json:"appearance"`
	ThemeId    string `json:"theme_id"`
}

type UpdateThemeRequest struct {
	Appearance string `json:"appearance" validate:"required"`
}

type LanguageResponse struct {
	Language string `json:"language"`
}

type UpdateLanguageRequest struct {
	Language string `json:"language" validate:"required"`
}
