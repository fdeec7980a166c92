package entity

// ThemeId is the concrete color theme applied to the UI.
type ThemeId string

const (
	ThemeLight  ThemeId = "light"
	ThemeDark   ThemeId = "dark"
	ThemeBlue   ThemeId = "blue"
	ThemeGreen  ThemeId = "green"
	ThemePurple ThemeId = "purple"
	ThemeOrange ThemeId = "orange"
	ThemePink   ThemeId = "pink"
)

// Appearance is the user-facing theme selection, which adds "System"
// (follow the device color scheme) on top of the concrete themes.
type Appearance string

const (
	AppearanceSystem Appearance = "System"
	AppearanceLight  Appearance = "Light"
	AppearanceDark   Appearance = "Dark"
	AppearanceBlue   Appearance = "Blue"
	AppearanceGreen  Appearance = "Green"
	AppearancePurple Appearance = "Purple"
	AppearanceOrange Appearance = "Orange"
	AppearancePink   Appearance = "Pink"
)

// Language codes supported by the UI shell.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageDhivehi Language = "dh"
)
