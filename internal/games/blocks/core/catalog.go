package core

import (
	"fmt"
	"sort"
)

type shapeDef struct {
	id     ShapeID
	cat    Category
	weight float64
	fill   Fill
	cells  []Cell
}

// shapeDefs is the closed set of shapes. Offsets are (col,row).
var shapeDefs = []shapeDef{
	{ShapeDot, CategoryDot, 4, FillYellow, []Cell{C(0, 0)}},

	{ShapeDominoH, CategoryDomino, 10, FillOrange, []Cell{C(0, 0), C(1, 0)}},
	{ShapeDominoV, CategoryDomino, 10, FillOrange, []Cell{C(0, 0), C(0, 1)}},

	{ShapeLine3H, CategoryLine, 8, FillCyan, []Cell{C(0, 0), C(1, 0), C(2, 0)}},
	{ShapeLine3V, CategoryLine, 8, FillCyan, []Cell{C(0, 0), C(0, 1), C(0, 2)}},
	{ShapeLine4H, CategoryLine, 6, FillCyan, []Cell{C(0, 0), C(1, 0), C(2, 0), C(3, 0)}},
	{ShapeLine4V, CategoryLine, 6, FillCyan, []Cell{C(0, 0), C(0, 1), C(0, 2), C(0, 3)}},
	{ShapeLine5H, CategoryLine, 3, FillCyan, []Cell{C(0, 0), C(1, 0), C(2, 0), C(3, 0), C(4, 0)}},
	{ShapeLine5V, CategoryLine, 3, FillCyan, []Cell{C(0, 0), C(0, 1), C(0, 2), C(0, 3), C(0, 4)}},

	{ShapeSquare2, CategorySquare, 8, FillYellow, []Cell{C(0, 0), C(1, 0), C(0, 1), C(1, 1)}},
	{ShapeSquare3, CategorySquare, 2, FillRed, []Cell{
		C(0, 0), C(1, 0), C(2, 0),
		C(0, 1), C(1, 1), C(2, 1),
		C(0, 2), C(1, 2), C(2, 2),
	}},

	{ShapeCornerNE, CategoryCorner, 7, FillGreen, []Cell{C(0, 0), C(1, 0), C(1, 1)}},
	{ShapeCornerNW, CategoryCorner, 7, FillGreen, []Cell{C(0, 0), C(1, 0), C(0, 1)}},
	{ShapeCornerSE, CategoryCorner, 7, FillGreen, []Cell{C(1, 0), C(0, 1), C(1, 1)}},
	{ShapeCornerSW, CategoryCorner, 7, FillGreen, []Cell{C(0, 0), C(0, 1), C(1, 1)}},

	{ShapeBigCornerNE, CategoryBigCorner, 3, FillBlue, []Cell{C(0, 0), C(1, 0), C(2, 0), C(2, 1), C(2, 2)}},
	{ShapeBigCornerNW, CategoryBigCorner, 3, FillBlue, []Cell{C(0, 0), C(1, 0), C(2, 0), C(0, 1), C(0, 2)}},
	{ShapeBigCornerSE, CategoryBigCorner, 3, FillBlue, []Cell{C(2, 0), C(2, 1), C(0, 2), C(1, 2), C(2, 2)}},
	{ShapeBigCornerSW, CategoryBigCorner, 3, FillBlue, []Cell{C(0, 0), C(0, 1), C(0, 2), C(1, 2), C(2, 2)}},

	{ShapeTeeUp, CategoryTee, 5, FillPurple, []Cell{C(1, 0), C(0, 1), C(1, 1), C(2, 1)}},
	{ShapeTeeDown, CategoryTee, 5, FillPurple, []Cell{C(0, 0), C(1, 0), C(2, 0), C(1, 1)}},
	{ShapeTeeLeft, CategoryTee, 5, FillPurple, []Cell{C(1, 0), C(0, 1), C(1, 1), C(1, 2)}},
	{ShapeTeeRight, CategoryTee, 5, FillPurple, []Cell{C(0, 0), C(0, 1), C(1, 1), C(0, 2)}},

	{ShapeSkewS, CategorySkew, 4, FillRed, []Cell{C(1, 0), C(2, 0), C(0, 1), C(1, 1)}},
	{ShapeSkewZ, CategorySkew, 4, FillRed, []Cell{C(0, 0), C(1, 0), C(1, 1), C(2, 1)}},

	{ShapePlus, CategoryPlus, 1, FillOrange, []Cell{C(1, 0), C(0, 1), C(1, 1), C(2, 1), C(1, 2)}},
}

// Catalog is the closed, ordered set of shapes available to the selector.
// A Catalog is immutable; WithWeights returns a new one.
type Catalog struct {
	shapes []*Shape // indexed by ShapeID
	byName map[string]*Shape
}

var defaultCatalog = mustBuildCatalog()

func mustBuildCatalog() *Catalog {
	shapes := make([]*Shape, ShapeCount)
	for _, d := range shapeDefs {
		s, err := NewShape(d.id, d.id.String(), d.cat, d.weight, d.fill, d.cells)
		if err != nil {
			panic(err)
		}
		shapes[d.id] = s
	}
	for id, s := range shapes {
		if s == nil {
			panic(fmt.Sprintf("catalog: shape %d has no definition", id))
		}
	}
	return newCatalog(shapes)
}

func newCatalog(shapes []*Shape) *Catalog {
	c := &Catalog{
		shapes: shapes,
		byName: make(map[string]*Shape, len(shapes)),
	}
	for _, s := range shapes {
		c.byName[s.Name] = s
	}
	return c
}

// DefaultCatalog returns the built-in catalog of 26 shapes.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Shapes returns the shapes in ShapeID order.
func (c *Catalog) Shapes() []*Shape {
	out := make([]*Shape, len(c.shapes))
	copy(out, c.shapes)
	return out
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// ByID returns the shape with the given id.
func (c *Catalog) ByID(id ShapeID) (*Shape, bool) {
	if int(id) >= len(c.shapes) {
		return nil, false
	}
	return c.shapes[id], true
}

// Lookup returns the shape with the given id or the default shape.
func (c *Catalog) Lookup(id ShapeID) *Shape {
	if s, ok := c.ByID(id); ok {
		return s
	}
	return c.shapes[DefaultShape]
}

// Categories returns the categories that have at least one shape.
func (c *Catalog) Categories() []Category {
	seen := make(map[Category]bool)
	var cats []Category
	for _, s := range c.shapes {
		if !seen[s.Category] {
			seen[s.Category] = true
			cats = append(cats, s.Category)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// InCategory returns the shapes of one category in ShapeID order.
func (c *Catalog) InCategory(cat Category) []*Shape {
	var out []*Shape
	for _, s := range c.shapes {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// TotalWeight returns the sum of all shape weights.
func (c *Catalog) TotalWeight() float64 {
	var total float64
	for _, s := range c.shapes {
		total += s.Weight
	}
	return total
}

// WithWeights returns a copy of the catalog with weights overridden by shape name.
// Names that match no shape are returned in unknown, sorted.
// A negative weight fails the whole call.
func (c *Catalog) WithWeights(weights map[string]float64) (*Catalog, []string, error) {
	var unknown []string
	for name, w := range weights {
		if _, ok := c.byName[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		if w < 0 {
			return nil, nil, fmt.Errorf("weight for %q is negative: %w", name, ErrMalformedShape)
		}
	}
	sort.Strings(unknown)

	shapes := make([]*Shape, len(c.shapes))
	for i, s := range c.shapes {
		if w, ok := weights[s.Name]; ok {
			shapes[i] = s.withWeight(w)
		} else {
			shapes[i] = s
		}
	}
	return newCatalog(shapes), unknown, nil
}
