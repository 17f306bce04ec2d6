// Package catalog knows which chip families exist, which boards each of
// them supports and what a board provides.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v2"

	"github.com/phytec-labs/elements/failure"
	"github.com/phytec-labs/elements/log"
	"github.com/phytec-labs/elements/util"
)

const descriptorExt = ".yaml"

type socDescriptor struct {
	Boards []string `yaml:"boards"`
}

// Catalog reads chip family and board descriptors from an SDK checkout.
// Nothing is cached: every query reads the descriptors again.
type Catalog struct {
	Base string
}

func New(base string) *Catalog {
	return &Catalog{Base: base}
}

func (c *Catalog) socFile(chipFamily string) string {
	return filepath.Join(c.Base, util.SocsDir, chipFamily+descriptorExt)
}

func (c *Catalog) boardFile(board string) string {
	return filepath.Join(c.Base, util.BoardsDir, board+descriptorExt)
}

func readYaml(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Annotatef(err, "failed to read '%s'", path)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return failure.Validationf("Failed to parse '%s': %s", path, err)
	}
	return nil
}

// ChipFamilies lists all chip families, sorted by name.
func (c *Catalog) ChipFamilies() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(c.Base, util.SocsDir, "*"+descriptorExt))
	if err != nil {
		return nil, errors.Trace(err)
	}
	families := util.MappedSlice(files, func(file string) string {
		return strings.TrimSuffix(filepath.Base(file), descriptorExt)
	})
	sort.Strings(families)
	return families, nil
}

// Boards lists the boards a chip family is available for.
func (c *Catalog) Boards(chipFamily string) ([]string, error) {
	path := c.socFile(chipFamily)
	if !util.FileExists(path) {
		return nil, failure.Validationf("SOC %s does not exist.", chipFamily)
	}
	var soc socDescriptor
	if err := readYaml(path, &soc); err != nil {
		return nil, errors.Trace(err)
	}
	return soc.Boards, nil
}

// LoadBoard reads and validates a board descriptor.
func (c *Catalog) LoadBoard(name string) (*Board, error) {
	path := c.boardFile(name)
	if !util.FileExists(path) {
		return nil, failure.Validationf("Board %s does not exist.", name)
	}
	log.Debug("Loading board descriptor '%s'.\n", path)
	board := &Board{}
	if err := readYaml(path, board); err != nil {
		return nil, errors.Trace(err)
	}
	board.Name = name
	if err := board.validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return board, nil
}

// Validate checks that the board of t is listed under its chip family.
func (c *Catalog) Validate(t Target) error {
	boards, err := c.Boards(t.ChipFamily)
	if err != nil {
		return errors.Trace(err)
	}
	for _, board := range boards {
		if board == t.Board {
			return nil
		}
	}
	return failure.Validationf("Board %s is not available for %s", t.Board, t.ChipFamily)
}

// Resolve validates a user supplied chip family and board.
func (c *Catalog) Resolve(chipFamily, board string) (Target, error) {
	t := NewTarget(chipFamily, board)
	if err := c.Validate(t); err != nil {
		return Target{}, errors.Trace(err)
	}
	return t, nil
}
