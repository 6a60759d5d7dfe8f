package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tutorpress/tutorpress-api/models"
)

type CertificateTemplate struct {
	Key           string `json:"key"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Orientation   string `json:"orientation"`
	IsDefault     bool   `json:"is_default"`
	Path          string `json:"path"`
	URL           string `json:"url"`
	PreviewSrc    string `json:"preview_src"`
	BackgroundSrc string `json:"background_src"`
}

// TemplateProvider enumerates the installed certificate templates. The
// single-method interface keeps the certificate handlers testable without
// a real template installation on disk.
type TemplateProvider interface {
	ListTemplates(includeOffAndNone bool) (map[string]CertificateTemplate, error)
}

// FileTemplateSource serves the built-in template set, optionally extended
// by template directories found under baseDir. Each extension directory
// carries a template.json manifest and its assets; the directory name is
// the template key.
type FileTemplateSource struct {
	baseDir string
	baseURL string
}

func NewFileTemplateSource(baseDir, baseURL string) *FileTemplateSource {
	return &FileTemplateSource{baseDir: baseDir, baseURL: baseURL}
}

type templateManifest struct {
	Name        string `json:"name"`
	Orientation string `json:"orientation"`
	IsDefault   bool   `json:"is_default"`
}

func (s *FileTemplateSource) ListTemplates(includeOffAndNone bool) (map[string]CertificateTemplate, error) {
	templates := s.builtinTemplates()

	if s.baseDir != "" {
		entries, err := os.ReadDir(s.baseDir)
		if err != nil {
			return nil, fmt.Errorf("reading template directory %s: %w", s.baseDir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			key := entry.Name()
			manifestPath := filepath.Join(s.baseDir, key, "template.json")
			raw, err := os.ReadFile(manifestPath)
			if err != nil {
				continue
			}
			var manifest templateManifest
			if err := json.Unmarshal(raw, &manifest); err != nil {
				continue
			}
			templates[key] = s.materialize(key, manifest)
		}
	}

	if !includeOffAndNone {
		delete(templates, models.TemplateKeyOff)
		delete(templates, models.TemplateKeyNone)
	}
	return templates, nil
}

func (s *FileTemplateSource) builtinTemplates() map[string]CertificateTemplate {
	builtin := map[string]templateManifest{
		models.TemplateKeyDefault: {Name: "Default", Orientation: "landscape", IsDefault: true},
		"classic":                 {Name: "Classic", Orientation: "landscape"},
		"minimal":                 {Name: "Minimal", Orientation: "landscape"},
		"elegant":                 {Name: "Elegant", Orientation: "portrait"},
	}

	templates := make(map[string]CertificateTemplate, len(builtin)+2)
	for key, manifest := range builtin {
		templates[key] = s.materialize(key, manifest)
	}
	// The two "no certificate" sentinels carry no assets.
	templates[models.TemplateKeyNone] = CertificateTemplate{
		Key: models.TemplateKeyNone, Slug: models.TemplateKeyNone, Name: "None",
	}
	templates[models.TemplateKeyOff] = CertificateTemplate{
		Key: models.TemplateKeyOff, Slug: models.TemplateKeyOff, Name: "None",
	}
	return templates
}

func (s *FileTemplateSource) materialize(key string, manifest templateManifest) CertificateTemplate {
	name := manifest.Name
	if name == "" {
		name = key
	}
	orientation := manifest.Orientation
	if orientation == "" {
		orientation = "landscape"
	}
	url := s.baseURL + "/" + key
	return CertificateTemplate{
		Key:           key,
		Slug:          key,
		Name:          name,
		Orientation:   orientation,
		IsDefault:     manifest.IsDefault,
		Path:          filepath.Join(s.baseDir, key),
		URL:           url,
		PreviewSrc:    url + "/preview.png",
		BackgroundSrc: url + "/background.png",
	}
}
