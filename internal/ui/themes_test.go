package ui

import "testing"

func TestSetTheme(t *testing.T) {
	original := CurrentTheme()
	defer SetTheme(original)

	SetTheme(LightTheme)
	if CurrentTheme().Name != "light" {
		t.Errorf("CurrentTheme().Name = %q, want light", CurrentTheme().Name)
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	original := CurrentTheme()
	defer SetTheme(original)

	InitTheme(true)
	if CurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) should select NoColorTheme, got %q", CurrentTheme().Name)
	}
	if ColorSuccess() != "" || ColorReset() != "" {
		t.Error("NoColorTheme accessors should return empty strings")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	original := CurrentTheme()
	defer SetTheme(original)
	t.Setenv("NO_COLOR", "1")

	InitTheme(false)
	if CurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR env should select NoColorTheme, got %q", CurrentTheme().Name)
	}
}

func TestAccessorsMatchTheme(t *testing.T) {
	original := CurrentTheme()
	defer SetTheme(original)

	SetTheme(DarkTheme)
	if ColorError() != DarkTheme.Error {
		t.Errorf("ColorError() = %q, want %q", ColorError(), DarkTheme.Error)
	}
	if ColorUnderline() != DarkTheme.Underline {
		t.Errorf("ColorUnderline() = %q, want %q", ColorUnderline(), DarkTheme.Underline)
	}
}
