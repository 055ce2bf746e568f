package common

const (
	SrcFileExtension = ".hy"
	ModuleFileName   = "hydro-mod.toml"
	HydroVersion     = "0.1.0"
)

// HydroCompilerID is the string printed by `hydroc version`.
const HydroCompilerID = "hydroc v" + HydroVersion + " (linux/amd64)"

// WordSize is the size in bytes of a single stack slot on the target.
const WordSize = 8
