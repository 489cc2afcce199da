package main

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yml
var languagesYAML []byte

// LanguageInfo holds the fields of a languages.yml entry used for fence tags.
type LanguageInfo struct {
	Type       string   `yaml:"type"` // programming, data, markup
	Extensions []string `yaml:"extensions"`
}

// LanguageMap maps fence tags (e.g., "python") to their details.
type LanguageMap map[string]LanguageInfo

// LoadedLanguageData holds the parsed language map and an extension index.
type LoadedLanguageData struct {
	Langs        LanguageMap
	extensionMap map[string]string // ".py" -> "python"
}

// loadLanguageData parses the embedded language table.
func loadLanguageData() (*LoadedLanguageData, error) {
	return parseLanguageData(languagesYAML)
}

func parseLanguageData(data []byte) (*LoadedLanguageData, error) {
	var langs LanguageMap
	if err := yaml.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("error parsing language table: %w", err)
	}

	ld := &LoadedLanguageData{
		Langs:        langs,
		extensionMap: make(map[string]string),
	}
	for langName, info := range langs {
		for _, ext := range info.Extensions {
			lowerExt := strings.ToLower(ext)
			if owner, ok := ld.extensionMap[lowerExt]; ok {
				return nil, fmt.Errorf("extension %s claimed by both %s and %s", lowerExt, owner, langName)
			}
			ld.extensionMap[lowerExt] = langName
		}
	}
	return ld, nil
}

// GetLanguageForFile returns the fence tag for filePath, if its extension is known.
func (ld *LoadedLanguageData) GetLanguageForFile(filePath string) (string, bool) {
	if ld == nil {
		return "", false
	}
	ext := strings.ToLower(fileExtension(filePath))
	if ext == "" {
		return "", false
	}
	lang, ok := ld.extensionMap[ext]
	return lang, ok
}
