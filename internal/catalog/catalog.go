// Package catalog loads and holds the fixed vocabularies used both as
// candidate secrets and as the guess-acceptance dictionary. A catalog is
// immutable after load and is injected into the components that need it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"wurdle/internal/constants"
	"wurdle/internal/util"
)

type WordEntry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

type wordFile struct {
	Words []WordEntry `json:"words"`
}

// WordList is one fixed vocabulary of uppercase words of WordLength letters.
type WordList struct {
	ID      string
	Entries []WordEntry

	set   map[string]struct{}
	hints map[string]string
}

func (l *WordList) Len() int {
	return len(l.Entries)
}

func (l *WordList) EntryAt(i int) WordEntry {
	return l.Entries[i]
}

func (l *WordList) Contains(word string) bool {
	_, ok := l.set[word]
	return ok
}

func (l *WordList) Hint(word string) string {
	if word == "" {
		return ""
	}
	hint, ok := l.hints[word]
	if !ok {
		util.LogWarn("Hint not found for word: %s", word)
		return ""
	}
	return hint
}

// Catalog holds every loaded word-list plus the shared accepted-guess set.
type Catalog struct {
	lists         map[string]*WordList
	accepted      map[string]struct{}
	defaultListID string
}

// Load reads every *.json word-list in dir (file basename = list id) and the
// optional accepted-words file. The default list must exist and be non-empty;
// a missing accepted file degrades to list-only guess acceptance.
func Load(dir, acceptedPath, defaultListID string) (*Catalog, error) {
	pattern := filepath.ToSlash(filepath.Join(dir, "*.json"))
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob word-lists %s: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no word-lists found in %s", dir)
	}

	lists := make(map[string]*WordList, len(paths))
	for _, path := range paths {
		id := strings.TrimSuffix(filepath.Base(path), ".json")
		list, err := loadList(id, path)
		if err != nil {
			return nil, fmt.Errorf("load word-list %s: %w", id, err)
		}
		lists[id] = list
		util.LogInfo("Loaded word-list %q with %d words", id, list.Len())
	}

	if _, ok := lists[defaultListID]; !ok {
		return nil, fmt.Errorf("default word-list %q not found in %s", defaultListID, dir)
	}

	accepted, err := loadAcceptedWords(acceptedPath)
	if err != nil {
		util.LogWarn("No accepted-words file (%v), guesses limited to list members", err)
		accepted = map[string]struct{}{}
	} else {
		util.LogInfo("Loaded %d accepted words", len(accepted))
	}

	return &Catalog{
		lists:         lists,
		accepted:      accepted,
		defaultListID: defaultListID,
	}, nil
}

func loadList(id, path string) (*WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wf wordFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, err
	}

	entries := lo.FilterMap(wf.Words, func(entry WordEntry, _ int) (WordEntry, bool) {
		entry.Word = strings.ToUpper(strings.TrimSpace(entry.Word))
		if len(entry.Word) != constants.WordLength {
			util.LogWarn("Skipping word %q in list %q: not %d letters", entry.Word, id, constants.WordLength)
			return entry, false
		}
		return entry, true
	})
	if len(entries) == 0 {
		return nil, fmt.Errorf("word-list %q contains no %d-letter words", id, constants.WordLength)
	}

	set := make(map[string]struct{}, len(entries))
	hints := make(map[string]string, len(entries))
	lo.ForEach(entries, func(entry WordEntry, _ int) {
		set[entry.Word] = struct{}{}
		hints[entry.Word] = entry.Hint
	})

	return &WordList{ID: id, Entries: entries, set: set, hints: hints}, nil
}

func loadAcceptedWords(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	accepted := make(map[string]struct{}, len(lines))
	for _, w := range lines {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		accepted[strings.ToUpper(w)] = struct{}{}
	}
	return accepted, nil
}

// List returns the word-list with the given id.
func (c *Catalog) List(id string) (*WordList, bool) {
	list, ok := c.lists[id]
	return list, ok
}

func (c *Catalog) DefaultListID() string {
	return c.defaultListID
}

func (c *Catalog) DefaultList() *WordList {
	return c.lists[c.defaultListID]
}

// ListIDs returns the ids of every loaded list.
func (c *Catalog) ListIDs() []string {
	return lo.Keys(c.lists)
}

// Accepts reports whether a guess may be played against the given list. A
// guess is acceptable if it is a list member or in the shared accepted set.
func (c *Catalog) Accepts(list *WordList, word string) bool {
	if list.Contains(word) {
		return true
	}
	_, ok := c.accepted[word]
	return ok
}

func (c *Catalog) AcceptedCount() int {
	return len(c.accepted)
}

func (c *Catalog) WordCount() int {
	return lo.SumBy(lo.Values(c.lists), func(l *WordList) int { return l.Len() })
}
