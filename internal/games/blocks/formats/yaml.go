// Package formats converts engine snapshots to and from their persisted
// YAML layout. Decoding never fails on an unknown token: it substitutes a
// documented default, reports a TokenWarning and logs it.
package formats

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// Version is the layout version written by EncodeSnapshot.
const Version = 1

// ErrUnsupportedVersion is returned for documents written by a newer layout.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Row is one board row of nullable color names.
type Row []*string

// MarshalYAML writes the row in flow style so a board reads as a grid.
func (r Row) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range r {
		if c == nil {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
			continue
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: *c})
	}
	return n, nil
}

// YAMLSnapshot is the persisted layout of a core.Snapshot.
type YAMLSnapshot struct {
	Version   int       `yaml:"version"`
	ID        string    `yaml:"id"`
	Score     int       `yaml:"score"`
	Strategy  string    `yaml:"strategy"`
	Pieces    []string  `yaml:"pieces,flow"`
	CreatedAt time.Time `yaml:"created_at"`
	Board     []Row     `yaml:"board"`
}

// TokenWarning records a value that was replaced by a default during decoding.
type TokenWarning struct {
	Field   string
	Value   string
	Default string
}

func (w TokenWarning) String() string {
	return fmt.Sprintf("%s: %q replaced by %q", w.Field, w.Value, w.Default)
}

// FromSnapshot converts an engine snapshot to its persisted layout.
func FromSnapshot(snap core.Snapshot) YAMLSnapshot {
	doc := YAMLSnapshot{
		Version:   Version,
		ID:        snap.ID,
		Score:     snap.Score,
		Strategy:  snap.Strategy.String(),
		Pieces:    make([]string, len(snap.Pieces)),
		CreatedAt: snap.CreatedAt.UTC(),
		Board:     make([]Row, core.BoardSize),
	}
	for i, id := range snap.Pieces {
		doc.Pieces[i] = id.String()
	}
	for row := range doc.Board {
		doc.Board[row] = make(Row, core.BoardSize)
		for col, f := range snap.Board[row] {
			if f == core.FillNone {
				continue
			}
			name := f.String()
			doc.Board[row][col] = &name
		}
	}
	return doc
}

// EncodeSnapshot renders a snapshot as YAML.
func EncodeSnapshot(snap core.Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(FromSnapshot(snap))
	if err != nil {
		return nil, fmt.Errorf("formats: cannot encode snapshot %s: %w", snap.ID, err)
	}
	return data, nil
}

// DecodeSnapshot parses a YAML snapshot. Unknown tokens are replaced by
// defaults and reported; logger may be nil.
func DecodeSnapshot(data []byte, logger *log.Logger) (core.Snapshot, []TokenWarning, error) {
	var doc YAMLSnapshot
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return core.Snapshot{}, nil, fmt.Errorf("formats: cannot parse snapshot: %w", err)
	}
	return doc.ToSnapshot(logger)
}

// ToSnapshot converts the persisted layout to an engine snapshot.
func (doc YAMLSnapshot) ToSnapshot(logger *log.Logger) (core.Snapshot, []TokenWarning, error) {
	if doc.Version > Version {
		return core.Snapshot{}, nil, fmt.Errorf("formats: version %d: %w", doc.Version, ErrUnsupportedVersion)
	}

	d := decoder{logger: logger}
	snap := core.Snapshot{
		ID:        doc.ID,
		Score:     doc.Score,
		CreatedAt: doc.CreatedAt,
	}

	if snap.ID == "" {
		snap.ID = uuid.NewString()
		d.warn("id", "", snap.ID)
	}
	if snap.Score < 0 {
		d.warn("score", fmt.Sprint(doc.Score), "0")
		snap.Score = 0
	}
	if snap.CreatedAt.IsZero() {
		d.warn("created_at", "", "zero time")
	}

	strategy, ok := core.ParseStrategy(doc.Strategy)
	if !ok {
		d.warn("strategy", doc.Strategy, strategy.String())
	}
	snap.Strategy = strategy

	snap.Pieces = make([]core.ShapeID, len(doc.Pieces))
	for i, name := range doc.Pieces {
		id, ok := core.ParseShapeID(name)
		if !ok {
			d.warn(fmt.Sprintf("pieces[%d]", i), name, id.String())
		}
		snap.Pieces[i] = id
	}

	if len(doc.Board) != core.BoardSize {
		d.warn("board", fmt.Sprintf("%d rows", len(doc.Board)), fmt.Sprintf("%d rows", core.BoardSize))
	}
	for row := 0; row < core.BoardSize && row < len(doc.Board); row++ {
		cells := doc.Board[row]
		if len(cells) != core.BoardSize {
			d.warn(fmt.Sprintf("board[%d]", row), fmt.Sprintf("%d cells", len(cells)), fmt.Sprintf("%d cells", core.BoardSize))
		}
		for col := 0; col < core.BoardSize && col < len(cells); col++ {
			if cells[col] == nil {
				continue
			}
			f, ok := core.ParseFill(*cells[col])
			if !ok {
				d.warn(fmt.Sprintf("board[%d][%d]", row, col), *cells[col], f.String())
			}
			snap.Board[row][col] = f
		}
	}

	return snap, d.warnings, nil
}

type decoder struct {
	logger   *log.Logger
	warnings []TokenWarning
}

func (d *decoder) warn(field, value, def string) {
	w := TokenWarning{Field: field, Value: value, Default: def}
	d.warnings = append(d.warnings, w)
	if d.logger != nil {
		d.logger.Warn("unknown snapshot token", "field", field, "value", value, "default", def)
	}
}
