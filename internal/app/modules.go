package app

import (
	"github.com/specialistvlad/wfgraph/internal/mappers"
	"github.com/specialistvlad/wfgraph/internal/registry"
)

// coreModules is the definitive list of mapper modules compiled into the
// binary.
var coreModules = []registry.Module{
	mappers.Module{},
}
