package apptable

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// minFuzzyLen is the shortest spoken name that may be resolved by fuzzy match.
const minFuzzyLen = 3

// DefaultAliases maps spoken application names to launch commands.
var DefaultAliases = map[string]string{
	"code":       "code",
	"vscode":     "code",
	"browser":    "firefox",
	"firefox":    "firefox",
	"chrome":     "google-chrome",
	"terminal":   "gnome-terminal",
	"files":      "nautilus",
	"explorer":   "nautilus",
	"calculator": "gnome-calculator",
	"spotify":    "spotify",
	"discord":    "discord",
}

// file is the on-disk layout of the alias table.
type file struct {
	Apps map[string]string `yaml:"apps"`
}

// Table resolves spoken application names. It is read-mostly; Refresh swaps the contents.
type Table struct {
	path string

	mu      sync.RWMutex
	aliases map[string]string
	names   []string
}

// New creates a table. An empty path serves DefaultAliases only.
func New(path string) (*Table, error) {
	t := &Table{path: path}
	if err := t.Refresh(context.Background()); err != nil {
		return nil, err
	}
	return t, nil
}

// FromMap creates a table over a fixed alias map.
func FromMap(aliases map[string]string) *Table {
	t := &Table{}
	t.swap(aliases)
	return t
}

// Refresh reloads the alias file, layering it over DefaultAliases.
func (t *Table) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	aliases := make(map[string]string, len(DefaultAliases))
	for k, v := range DefaultAliases {
		aliases[k] = v
	}

	if t.path != "" {
		data, err := os.ReadFile(t.path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		case err != nil:
			return fmt.Errorf("read app table %s: %w", t.path, err)
		default:
			var f file
			if err := yaml.Unmarshal(data, &f); err != nil {
				return fmt.Errorf("parse app table %s: %w", t.path, err)
			}
			for k, v := range f.Apps {
				aliases[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
			}
		}
	}

	t.swap(aliases)
	return nil
}

func (t *Table) swap(aliases map[string]string) {
	names := make([]string, 0, len(aliases))
	for k := range aliases {
		names = append(names, k)
	}
	sort.Strings(names)

	t.mu.Lock()
	t.aliases = aliases
	t.names = names
	t.mu.Unlock()
}

// Resolve maps a spoken name to a launch command.
// Exact aliases win, then the best fuzzy match. ok is false when nothing matched.
func (t *Table) Resolve(name string) (command string, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if cmd, found := t.aliases[key]; found {
		return cmd, true
	}

	compact := strings.ReplaceAll(key, " ", "")
	if len(compact) < minFuzzyLen {
		return "", false
	}
	if cmd, found := t.aliases[compact]; found {
		return cmd, true
	}

	matches := fuzzy.Find(compact, t.names)
	if len(matches) == 0 {
		return "", false
	}
	return t.aliases[matches[0].Str], true
}

// Len returns the number of known aliases.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.aliases)
}
