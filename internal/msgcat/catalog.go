package msgcat

import (
    "embed"
    "errors"
    "fmt"
    "io/fs"
    "os"
    "path"
    "strings"
    "sync"
    "text/template"

    yaml "gopkg.in/yaml.v3"
)

const defaultFile = "messages.en.yaml"

//go:embed messages.en.yaml
var embedded embed.FS

// ErrUnknownKey is returned by Render when no text is defined for a key.
var ErrUnknownKey = errors.New("msgcat: unknown key")

// Catalog maps dotted keys ("error.room_full") to text/template sources.
// Templates run with missingkey=error so a caller passing incomplete data gets its fallback.
type Catalog struct {
    mu    sync.RWMutex
    texts map[string]string
    cache map[string]*template.Template
}

// New loads the embedded English texts, then every *.yaml / *.yml file of overrideDir
// in name order. Two override files defining the same key is an error.
func New(overrideDir string) (*Catalog, error) {
    c := &Catalog{texts: map[string]string{}, cache: map[string]*template.Template{}}

    base, err := decodeFile(embedded, defaultFile)
    if err != nil { return nil, err }
    c.merge(base)

    dir := strings.TrimSpace(overrideDir)
    if dir == "" { return c, nil }
    overrides, err := loadOverrides(os.DirFS(dir))
    if err != nil { return nil, fmt.Errorf("messages dir %s: %w", dir, err) }
    c.merge(overrides)
    return c, nil
}

func loadOverrides(fsys fs.FS) (map[string]string, error) {
    entries, err := fs.ReadDir(fsys, ".")
    if err != nil { return nil, err }

    out := map[string]string{}
    owner := map[string]string{}
    for _, e := range entries {
        name := e.Name()
        if e.IsDir() { continue }
        if ext := strings.ToLower(path.Ext(name)); ext != ".yaml" && ext != ".yml" { continue }

        texts, err := decodeFile(fsys, name)
        if err != nil { return nil, err }
        for k, v := range texts {
            if prev, dup := owner[k]; dup {
                return nil, fmt.Errorf("duplicate override key %q in %s and %s", k, prev, name)
            }
            owner[k] = name
            out[k] = v
        }
    }
    return out, nil
}

func decodeFile(fsys fs.FS, name string) (map[string]string, error) {
    raw, err := fs.ReadFile(fsys, name)
    if err != nil { return nil, fmt.Errorf("read %s: %w", name, err) }
    var doc yaml.Node
    if err := yaml.Unmarshal(raw, &doc); err != nil { return nil, fmt.Errorf("parse %s: %w", name, err) }

    out := map[string]string{}
    if len(doc.Content) == 0 { return out, nil }
    if err := collect(doc.Content[0], "", out); err != nil { return nil, fmt.Errorf("%s: %w", name, err) }
    return out, nil
}

// collect walks nested mappings. Leaves must be strings; null leaves are skipped.
func collect(n *yaml.Node, prefix string, out map[string]string) error {
    switch n.Kind {
    case yaml.MappingNode:
        for i := 0; i+1 < len(n.Content); i += 2 {
            key := n.Content[i].Value
            if prefix != "" { key = prefix + "." + key }
            if err := collect(n.Content[i+1], key, out); err != nil { return err }
        }
        return nil
    case yaml.AliasNode:
        return collect(n.Alias, prefix, out)
    case yaml.ScalarNode:
        if prefix == "" { return fmt.Errorf("line %d: text without a key", n.Line) }
        switch n.ShortTag() {
        case "!!null":
            return nil
        case "!!str":
            out[prefix] = n.Value
            return nil
        }
        return fmt.Errorf("line %d: %s must be a string, got %s", n.Line, prefix, n.ShortTag())
    default:
        return fmt.Errorf("line %d: %s must be a string or a mapping", n.Line, prefix)
    }
}

func (c *Catalog) merge(texts map[string]string) {
    c.mu.Lock()
    defer c.mu.Unlock()
    for k, v := range texts {
        c.texts[k] = v
        delete(c.cache, k)
    }
}

// Render executes the text under key with data.
func (c *Catalog) Render(key string, data any) (string, error) {
    t, err := c.compiled(strings.TrimSpace(key))
    if err != nil { return "", err }
    var b strings.Builder
    if err := t.Execute(&b, data); err != nil { return "", err }
    return b.String(), nil
}

// Text renders key, or returns fallback when the key is unknown or data does not fit.
// A nil Catalog always returns fallback.
func (c *Catalog) Text(key string, data any, fallback string) string {
    if c == nil { return fallback }
    s, err := c.Render(key, data)
    if err != nil { return fallback }
    return s
}

func (c *Catalog) Has(key string) bool {
    c.mu.RLock()
    defer c.mu.RUnlock()
    _, ok := c.texts[strings.TrimSpace(key)]
    return ok
}

func (c *Catalog) compiled(key string) (*template.Template, error) {
    c.mu.RLock()
    t, cached := c.cache[key]
    text, known := c.texts[key]
    c.mu.RUnlock()
    switch {
    case cached:
        return t, nil
    case !known || strings.TrimSpace(text) == "":
        return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
    }

    t, err := template.New(key).Option("missingkey=error").Parse(text)
    if err != nil { return nil, fmt.Errorf("template %s: %w", key, err) }
    c.mu.Lock()
    c.cache[key] = t
    c.mu.Unlock()
    return t, nil
}
