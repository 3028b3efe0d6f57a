// Package content embeds the sample game catalog and its translations.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"stage-game-service/internal/domain"
)

//go:embed games/*.json
var gamesFS embed.FS

// Locales holds translation trees under locales/<locale>/.
//
//go:embed locales
var Locales embed.FS

// LocalesRoot is the directory inside Locales that holds locale folders.
const LocalesRoot = "locales"

// Games decodes every embedded game, keyed by id.
func Games() (map[string]domain.Game, error) {
	return LoadGames(gamesFS, "games")
}

// LoadGames decodes every *.json game file in dir.
func LoadGames(fsys fs.FS, dir string) (map[string]domain.Game, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read games dir: %w", err)
	}

	games := make(map[string]domain.Game, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		var game domain.Game
		if err := json.Unmarshal(raw, &game); err != nil {
			return nil, fmt.Errorf("decode %s: %w", entry.Name(), err)
		}
		if _, dup := games[game.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %q in %s", game.ID, entry.Name())
		}
		games[game.ID] = game
	}
	return games, nil
}
