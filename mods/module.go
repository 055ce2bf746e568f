package mods

// HydroModule represents a module: the directory containing a build file and
// the sources compiled with it.
type HydroModule struct {
	// Name is the name of the module.
	Name string

	// ModuleRoot is the path to the root directory of the module.
	ModuleRoot string
}

// BuildProfile represents the profile that the compiler will use to build.
type BuildProfile struct {
	// Name is the name of the profile.  Synthesized profiles have no name.
	Name string

	// OutputPath is the path to the final output file.
	OutputPath string

	// OutputFormat is the type of output the compiler should produce.  This
	// should be one of the enumerated formats (prefixed `Format`).
	OutputFormat int

	// Assembler is the NASM-compatible assembler used to produce objects.
	Assembler string

	// Linker is the linker used to produce executables.
	Linker string

	// KeepIntermediates indicates whether intermediate files (assembly and
	// objects) should be left next to the output.
	KeepIntermediates bool
}

// Available Output Formats
const (
	FormatASM    = iota // NASM assembly text
	FormatObject        // ELF64 object file
	FormatBin           // Linked executable
	FormatLLVM          // LLVM IR text
)

// FormatNames maps format names (as used in build files and on the command
// line) to enumerated format values.
var FormatNames = map[string]int{
	"asm":  FormatASM,
	"obj":  FormatObject,
	"exe":  FormatBin,
	"llvm": FormatLLVM,
}

// FormatName returns the name of an enumerated format.
func FormatName(format int) string {
	for name, value := range FormatNames {
		if value == format {
			return name
		}
	}

	return "unknown"
}

// formatExtensions is the default file extension of each output format.
var formatExtensions = map[int]string{
	FormatASM:    ".asm",
	FormatObject: ".o",
	FormatBin:    "",
	FormatLLVM:   ".ll",
}

// FormatExtension returns the default file extension for a format.
func FormatExtension(format int) string {
	return formatExtensions[format]
}

// Default tools used when a profile does not specify them.
const (
	DefaultAssembler = "nasm"
	DefaultLinker    = "ld"
)

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, profile name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
