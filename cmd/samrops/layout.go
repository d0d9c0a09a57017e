package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jamestiotio/SAMRAI/hier"
	"github.com/jamestiotio/SAMRAI/pdat"
)

// Layout is the YAML description of a hierarchy and the fields on it.
//
//	dim: 2
//	centering: edge
//	levels:
//	  - ratio: [1, 1]
//	    boxes:
//	      - {lo: [0, 0], hi: [8, 3]}
//	  - ratio: [2, 2]
//	    boxes:
//	      - {lo: [8, 2], hi: [13, 5]}
//	fields:
//	  - {name: v1, depth: 1, fill: 2.5}
type Layout struct {
	Dim       int         `yaml:"dim"`
	Centering string      `yaml:"centering"`
	Levels    []LevelSpec `yaml:"levels"`
	Fields    []FieldSpec `yaml:"fields"`
}

type LevelSpec struct {
	Ratio []int     `yaml:"ratio"`
	Boxes []BoxSpec `yaml:"boxes"`
}

type BoxSpec struct {
	Lo []int `yaml:"lo"`
	Hi []int `yaml:"hi"`
}

type FieldSpec struct {
	Name  string  `yaml:"name"`
	Depth int     `yaml:"depth"`
	Fill  float64 `yaml:"fill"`
}

// LoadLayout reads and validates a layout file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if l.Dim < 1 || l.Dim > 3 {
		return fmt.Errorf("dim must be 1, 2, or 3, got %d", l.Dim)
	}
	if _, err := l.centering(); err != nil {
		return err
	}
	if len(l.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}
	if len(l.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	for i, lv := range l.Levels {
		if len(lv.Ratio) != l.Dim {
			return fmt.Errorf("level %d: ratio has %d entries, want %d", i, len(lv.Ratio), l.Dim)
		}
		if len(lv.Boxes) == 0 {
			return fmt.Errorf("level %d declares no boxes", i)
		}
		for j, b := range lv.Boxes {
			if len(b.Lo) != l.Dim || len(b.Hi) != l.Dim {
				return fmt.Errorf("level %d box %d: lo/hi must have %d entries", i, j, l.Dim)
			}
		}
	}
	for i, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d has no name", i)
		}
		if f.Depth < 0 {
			return fmt.Errorf("field %s: negative depth", f.Name)
		}
	}
	return nil
}

func (l *Layout) centering() (pdat.Centering, error) {
	switch l.Centering {
	case "cell", "":
		return pdat.CellCentered, nil
	case "node":
		return pdat.NodeCentered, nil
	case "side":
		return pdat.SideCentered, nil
	case "edge":
		return pdat.EdgeCentered, nil
	case "face":
		return pdat.FaceCentered, nil
	}
	return 0, fmt.Errorf("unknown centering %q", l.Centering)
}

// Build realizes the layout: the hierarchy, one allocated field per
// FieldSpec filled with its constant, and a control-volume field masked
// against each finer level.  It returns the field ids in declaration order
// and the control-volume id.
func (l *Layout) Build() (*hier.PatchHierarchy, []int, int, error) {
	c, err := l.centering()
	if err != nil {
		return nil, nil, 0, err
	}
	h := hier.NewPatchHierarchy(l.Dim)
	for _, lv := range l.Levels {
		boxes := make([]hier.Box, len(lv.Boxes))
		owners := make([]int, len(lv.Boxes))
		for j, b := range lv.Boxes {
			boxes[j] = hier.NewBox(b.Lo, b.Hi)
		}
		h.AddLevel(hier.NewPatchLevel(boxes, hier.IntVector(lv.Ratio).Copy(), owners, 0))
	}

	ids := make([]int, len(l.Fields))
	cvolID := len(l.Fields)
	for ln := 0; ln < h.NumLevels(); ln++ {
		for _, p := range h.Level(ln).OwnedPatches() {
			for i, f := range l.Fields {
				depth := f.Depth
				if depth == 0 {
					depth = 1
				}
				d := pdat.NewData[float64](c, p.Box, depth)
				d.Fill(f.Fill)
				p.SetPatchData(i, d)
				ids[i] = i
			}
			p.SetPatchData(cvolID, pdat.NewData[float64](c, p.Box, 1))
		}
	}

	// cell volume shrinks with the level's ratio to the coarsest grid
	for ln := 0; ln < h.NumLevels(); ln++ {
		ratio := h.Level(ln).Ratio
		vol := 1.0
		for i := 0; i < l.Dim; i++ {
			vol /= float64(ratio[i])
		}
		buildControlVolume(h, ln, cvolID, vol)
	}
	return h, ids, cvolID, nil
}
