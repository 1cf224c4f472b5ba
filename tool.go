package ebf

import (
	"fmt"

	"github.com/MuhammadImtananWali/ebf/raster"
)

// Kind is what a tool does with its two files.
type Kind int

const (
	// Echo decodes the first file and writes it back out to the second
	Echo Kind = iota
	// Compare decodes both files and reports whether they are identical
	Compare
	// Convert decodes the first file and writes it to the second under a
	// different profile
	Convert
)

// Status lines printed on success.
const (
	StatusEchoed    = "ECHOED"
	StatusConverted = "CONVERTED"
)

// Tool is one of the command line utilities.
type Tool struct {
	Name    string
	Kind    Kind
	In      raster.Profile
	Out     raster.Profile
	Options *raster.Options
}

// Usage returns the line printed when the tool is run without arguments.
func (t Tool) Usage() string {
	return fmt.Sprintf("Usage: %s file1 file2", t.Name)
}

// Description is a short summary of the tool.
func (t Tool) Description() string {
	switch t.Kind {
	case Echo:
		return fmt.Sprintf("Validate an %s file and write a copy", t.In)
	case Compare:
		return fmt.Sprintf("Compare two %s files", t.In)
	default:
		return fmt.Sprintf("Convert an %s file to %s", t.In, t.Out)
	}
}

// Tools is the full set of utilities.
var Tools = []Tool{
	{Name: "ebfEcho", Kind: Echo, In: raster.EBF, Out: raster.EBF},
	{Name: "ebuEcho", Kind: Echo, In: raster.EBU, Out: raster.EBUCopy},
	{Name: "ebcEcho", Kind: Echo, In: raster.EBC, Out: raster.EBC},
	{Name: "ebfComp", Kind: Compare, In: raster.EBF, Out: raster.EBF},
	{Name: "ebuComp", Kind: Compare, In: raster.EBU, Out: raster.EBU},
	{Name: "ebcComp", Kind: Compare, In: raster.EBC, Out: raster.EBC},
	{Name: "ebf2ebu", Kind: Convert, In: raster.EBF, Out: raster.EBU},
	{Name: "ebu2ebf", Kind: Convert, In: raster.EBU, Out: raster.EBF, Options: &raster.Options{Layout: raster.LayoutCarryRow}},
	{Name: "ebu2ebc", Kind: Convert, In: raster.EBU, Out: raster.EBC, Options: &raster.Options{Transform: raster.Invert}},
	{Name: "ebc2ebu", Kind: Convert, In: raster.EBC, Out: raster.EBU, Options: &raster.Options{Transform: raster.Invert}},
}

// LookupTool returns the tool called name.
func LookupTool(name string) (Tool, bool) {
	for _, t := range Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
