package util

import "fmt"

type Version struct {
	Major uint
	Minor uint
	Patch uint
}

// ElementsVersion is the version of this tool.
var ElementsVersion = Version{1, 2, 0}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}
