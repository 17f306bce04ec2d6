package catalog

import (
	"fmt"
	"strings"
	"unicode"
)

// Target is a (chip family, board) pair. The names are kept as given by the
// user; the normalized forms are used for paths and generated identifiers.
type Target struct {
	ChipFamily string
	Board      string

	soc   string
	board string
}

// NewTarget builds a Target without checking it against a catalog. Use
// Catalog.Resolve for user input.
func NewTarget(chipFamily, board string) Target {
	return Target{
		ChipFamily: chipFamily,
		Board:      board,
		soc:        normalize(chipFamily),
		board:      normalize(board),
	}
}

func normalize(name string) string {
	return strings.ReplaceAll(name, "-", "")
}

// Soc is the normalized chip family name, e.g. "Hydrogen1".
func (t Target) Soc() string {
	return t.soc
}

// BoardName is the normalized board name, e.g. "ArtyA7".
func (t Target) BoardName() string {
	return t.board
}

// Top is the name of the generated top level design.
func (t Target) Top() string {
	return t.board + "Top"
}

// Package is the hardware generator package of the chip family.
func (t Target) Package() string {
	return "zibal.soc." + strings.ToLower(t.soc)
}

// Kit is the firmware board identifier, e.g. "hydrogen1-artya7".
func (t Target) Kit() string {
	return strings.ToLower(t.soc + "-" + t.board)
}

// Platform is the bootloader platform, the lower-cased chip family without digits.
func (t Target) Platform() string {
	var sb strings.Builder
	for _, r := range t.soc {
		if !unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%s", t.ChipFamily, t.Board)
}
