package game

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

//go:embed puzzles.json
var builtinPack []byte

// Difficulty levels recognised in puzzle packs.
var Difficulties = []string{"easy", "medium", "hard"}

// IsDifficulty reports whether d is a known difficulty level.
func IsDifficulty(d string) bool {
	for _, known := range Difficulties {
		if strings.EqualFold(d, known) {
			return true
		}
	}
	return false
}

// Puzzle is one entry of a puzzle pack.
type Puzzle struct {
	ID         string
	Difficulty string
	Givens     string
}

// Pack is an ordered collection of puzzles.
//
// Packs are JSON documents of the form
//
//	{"puzzles": [{"id": "...", "difficulty": "easy", "givens": "53..7...."}]}
type Pack struct {
	puzzles []Puzzle
}

// ParsePack reads a JSON puzzle pack. Entries with a malformed board are
// rejected with their index.
func ParsePack(data []byte) (*Pack, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidPack)
	}

	list := gjson.GetBytes(data, "puzzles")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: missing puzzles array", ErrInvalidPack)
	}

	pack := &Pack{}
	var parseErr error
	list.ForEach(func(idx, entry gjson.Result) bool {
		p := Puzzle{
			ID:         entry.Get("id").String(),
			Difficulty: strings.ToLower(entry.Get("difficulty").String()),
			Givens:     entry.Get("givens").String(),
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("puzzle-%d", len(pack.puzzles)+1)
		}
		if _, err := ParseBoard(p.Givens); err != nil {
			parseErr = fmt.Errorf("puzzle %d (%s): %w", idx.Int(), p.ID, err)
			return false
		}
		pack.puzzles = append(pack.puzzles, p)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return pack, nil
}

// LoadPackFile reads a puzzle pack from disk.
func LoadPackFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading puzzle pack %s: %w", path, err)
	}
	pack, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("loading puzzle pack %s: %w", path, err)
	}
	return pack, nil
}

// BuiltinPack returns the puzzles shipped with the binary.
func BuiltinPack() *Pack {
	pack, err := ParsePack(builtinPack)
	if err != nil {
		panic("game: built-in puzzle pack: " + err.Error())
	}
	return pack
}

// Len returns the number of puzzles.
func (p *Pack) Len() int {
	return len(p.puzzles)
}

// Puzzles returns a copy of the puzzles in pack order.
func (p *Pack) Puzzles() []Puzzle {
	out := make([]Puzzle, len(p.puzzles))
	copy(out, p.puzzles)
	return out
}

// Merge appends the puzzles of other. Ids already present are replaced.
func (p *Pack) Merge(other *Pack) {
	if other == nil {
		return
	}
	for _, np := range other.puzzles {
		replaced := false
		for i := range p.puzzles {
			if p.puzzles[i].ID == np.ID {
				p.puzzles[i] = np
				replaced = true
				break
			}
		}
		if !replaced {
			p.puzzles = append(p.puzzles, np)
		}
	}
}

// Find returns the puzzle with the given id.
func (p *Pack) Find(id string) (Puzzle, error) {
	for _, pz := range p.puzzles {
		if pz.ID == id {
			return pz, nil
		}
	}
	return Puzzle{}, fmt.Errorf("%w: id %q", ErrPuzzleNotFound, id)
}

// ByDifficulty returns the puzzles of one difficulty level.
func (p *Pack) ByDifficulty(difficulty string) []Puzzle {
	var out []Puzzle
	for _, pz := range p.puzzles {
		if strings.EqualFold(pz.Difficulty, difficulty) {
			out = append(out, pz)
		}
	}
	return out
}

// Pick returns the puzzle named by id, or a random puzzle of the given
// difficulty when id is empty.
func (p *Pack) Pick(id, difficulty string) (Puzzle, error) {
	if id != "" {
		return p.Find(id)
	}
	candidates := p.ByDifficulty(difficulty)
	if len(candidates) == 0 {
		return Puzzle{}, fmt.Errorf("%w: difficulty %q", ErrPuzzleNotFound, difficulty)
	}
	return candidates[rand.Intn(len(candidates))], nil
}
