package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var embeddedCatalogs embed.FS

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Catalog holds compiled message templates per locale.
type Catalog struct {
	fallback string
	messages map[string]map[string]*pongo2.Template
}

type catalogFile struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// EmbeddedFS returns the bundled catalogs.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogs, "catalog")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default returns the catalog built from the embedded files.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(fmt.Errorf("i18n: embedded catalog: %w", err))
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// LoadFS parses every JSON/YAML catalog file found in fsys. Later files may
// add keys to a locale but may not redefine one.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{
		fallback: DefaultLocale,
		messages: make(map[string]map[string]*pongo2.Template),
	}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", path, err)
		}
		file, err := parseCatalog(data, path)
		if err != nil {
			return err
		}
		return catalog.add(file, path)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var file catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("i18n: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &file); err == nil {
		return file, nil
	}
	if err := yaml.Unmarshal(data, &file); err == nil {
		return file, nil
	}
	return catalogFile{}, fmt.Errorf("i18n: parse %s: invalid JSON or YAML", source)
}

func (c *Catalog) add(file catalogFile, source string) error {
	locale := normalizeLocale(file.Locale)
	if locale == "" {
		return fmt.Errorf("i18n: file %s does not declare a locale", source)
	}

	messages := c.messages[locale]
	if messages == nil {
		messages = make(map[string]*pongo2.Template, len(file.Messages))
		c.messages[locale] = messages
	}

	for rawKey, text := range file.Messages {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			return fmt.Errorf("i18n: file %s defines an empty key", source)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("i18n: duplicate key %q for locale %s (file %s)", key, locale, source)
		}
		tpl, err := compile(text)
		if err != nil {
			return fmt.Errorf("i18n: compile %q in %s: %w", key, source, err)
		}
		messages[key] = tpl
	}
	return nil
}

// compile strips markup from the catalog text and parses it as a pongo2
// template. Output escaping is disabled: messages are inserted as text nodes.
func compile(text string) (*pongo2.Template, error) {
	clean := html.UnescapeString(textSanitizer().Sanitize(strings.TrimSpace(text)))
	return pongo2.FromString("{% autoescape off %}" + clean + "{% endautoescape %}")
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Translate renders key for locale, trying the exact locale, its base
// language and then the catalog fallback locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)
	for _, candidate := range c.candidates(locale) {
		tpl, ok := c.messages[candidate][key]
		if !ok {
			continue
		}
		out, err := tpl.Execute(contextFromArgs(args))
		if err != nil {
			return "", fmt.Errorf("i18n: render %q (%s): %w", key, candidate, err)
		}
		return strings.TrimSpace(out), nil
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrMissingTranslation, key, locale)
}

// Locales lists the locales held by the catalog.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Has reports whether key resolves for locale.
func (c *Catalog) Has(locale, key string) bool {
	if c == nil {
		return false
	}
	for _, candidate := range c.candidates(locale) {
		if _, ok := c.messages[candidate][key]; ok {
			return true
		}
	}
	return false
}

func (c *Catalog) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	add := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	add(locale)
	if idx := strings.Index(locale, "-"); idx > 0 {
		add(locale[:idx])
	}
	add(c.fallback)
	return out
}

// normalizeLocale turns "pt_br" and "PT-br" into "pt-BR".
func normalizeLocale(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return ""
	}
	parts := strings.SplitN(locale, "-", 2)
	lang := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return lang
	}
	return lang + "-" + strings.ToUpper(parts[1])
}

func contextFromArgs(args []any) pongo2.Context {
	ctx := pongo2.Context{}
	for _, arg := range args {
		switch values := arg.(type) {
		case map[string]any:
			for k, v := range values {
				ctx[k] = v
			}
		case map[string]string:
			for k, v := range values {
				ctx[k] = v
			}
		case pongo2.Context:
			for k, v := range values {
				ctx[k] = v
			}
		}
	}
	return ctx
}
