// Package i18n merges static translation trees into per-locale lookups and
// localizes game content.
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"dario.cat/mergo"
	"golang.org/x/text/language"
)

// Config selects the default and fallback locales. It is passed explicitly
// to whatever renders text.
type Config struct {
	Locale         string `yaml:"default"`
	FallbackLocale string `yaml:"fallback"`
}

// Bundle holds flattened messages keyed by locale and dotted namespace path.
type Bundle struct {
	cfg Config

	mu       sync.RWMutex
	messages map[string]map[string]string
	locales  []string
	matcher  language.Matcher
}

func NewBundle(cfg Config) *Bundle {
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	if cfg.FallbackLocale == "" {
		cfg.FallbackLocale = cfg.Locale
	}
	b := &Bundle{
		cfg:      cfg,
		messages: make(map[string]map[string]string),
	}
	b.rebuildMatcherLocked()
	return b
}

// Load builds a bundle from <root>/<locale>/<namespace path>.json files.
func Load(cfg Config, fsys fs.FS, root string) (*Bundle, error) {
	b := NewBundle(cfg)
	if err := b.LoadFS(fsys, root); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadFS adds every JSON tree found below root. A file at
// <root>/hi/pages/home/teen.json lands under namespace "pages.home.teen".
func (b *Bundle) LoadFS(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		parts := strings.Split(strings.TrimSuffix(rel, ".json"), "/")
		if len(parts) < 2 {
			return fmt.Errorf("translation file %s is not under a locale directory", p)
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		var tree map[string]interface{}
		if err := json.Unmarshal(raw, &tree); err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		return b.AddTree(parts[0], strings.Join(parts[1:], "."), tree)
	})
}

// AddTree flattens tree under namespace and merges it into locale.
// Later trees override earlier keys.
func (b *Bundle) AddTree(locale, namespace string, tree map[string]interface{}) error {
	flat := make(map[string]string)
	flatten(namespace, tree, flat)

	b.mu.Lock()
	defer b.mu.Unlock()

	dst, ok := b.messages[locale]
	if !ok {
		dst = make(map[string]string, len(flat))
		b.messages[locale] = dst
		b.locales = append(b.locales, locale)
		b.rebuildMatcherLocked()
	}
	if err := mergo.Merge(&dst, flat, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge %s/%s: %w", locale, namespace, err)
	}
	b.messages[locale] = dst
	return nil
}

// Lookup returns the message for key in locale, then in the fallback locale.
func (b *Bundle) Lookup(locale, key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if msg, ok := b.messages[locale][key]; ok {
		return msg, true
	}
	msg, ok := b.messages[b.cfg.FallbackLocale][key]
	return msg, ok
}

// T returns the translated message or the key itself when nothing matches.
func (b *Bundle) T(locale, key string) string {
	if msg, ok := b.Lookup(locale, key); ok {
		return msg
	}
	return key
}

// Messages returns every message visible in locale, fallback entries included.
func (b *Bundle) Messages(locale string) map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.messages[b.cfg.FallbackLocale]))
	for k, v := range b.messages[b.cfg.FallbackLocale] {
		out[k] = v
	}
	for k, v := range b.messages[locale] {
		out[k] = v
	}
	return out
}

// Locales lists the loaded locales in load order.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.locales...)
}

// Resolve maps a requested locale onto a supported one, defaulting to the configured locale.
func (b *Bundle) Resolve(locale string) string {
	if locale == "" {
		return b.cfg.Locale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return b.cfg.Locale
	}
	return b.match(tag)
}

// Match negotiates an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.cfg.Locale
	}
	return b.match(tags...)
}

func (b *Bundle) match(tags ...language.Tag) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	supported := b.supportedLocked()
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No || idx >= len(supported) {
		return b.cfg.Locale
	}
	return supported[idx]
}

// supportedLocked orders locales with the default first so the matcher
// falls back to it.
func (b *Bundle) supportedLocked() []string {
	supported := []string{b.cfg.Locale}
	for _, l := range b.locales {
		if l != b.cfg.Locale {
			supported = append(supported, l)
		}
	}
	return supported
}

func (b *Bundle) rebuildMatcherLocked() {
	supported := b.supportedLocked()
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		tags = append(tags, language.Make(l))
	}
	b.matcher = language.NewMatcher(tags)
}

func flatten(prefix string, node interface{}, out map[string]string) {
	switch v := node.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flatten(join(prefix, k), v[k], out)
		}
	case []interface{}:
		for i, item := range v {
			flatten(join(prefix, strconv.Itoa(i)), item, out)
		}
	case string:
		out[prefix] = v
	case nil:
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
