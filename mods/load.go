package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hydroc/common"
	"hydroc/report"

	"github.com/pelletier/go-toml"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a Hydro module as it is encoded in TOML
type tomlModule struct {
	Name          string         `toml:"name"`
	Version       string         `toml:"hydro-version"`
	BuildProfiles []*tomlProfile `toml:"profiles"`
}

// tomlProfile represents a profile as it encoded in TOML
type tomlProfile struct {
	Name              string `toml:"name"`
	OutputPath        string `toml:"output"`
	Format            string `toml:"format"`
	Assembler         string `toml:"assembler,omitempty"`
	Linker            string `toml:"linker,omitempty"`
	KeepIntermediates bool   `toml:"keep-intermediates"`
	DefaultProf       bool   `toml:"default"` // in absence of a selected profile, choose this profile
}

// FindModuleFile returns the path to the module file in dir if one exists.
func FindModuleFile(dir string) (string, bool) {
	modFilePath := filepath.Join(dir, common.ModuleFileName)

	if finfo, err := os.Stat(modFilePath); err == nil && !finfo.IsDir() {
		return modFilePath, true
	}

	return "", false
}

// LoadModule loads and validates the module file at `modFilePath` and selects
// a build profile from it.  `selectedProfile` can be empty if there is no
// profile selected: the profile marked default is used, or the first profile
// if none is.  Relative output paths are resolved against the module root.
func LoadModule(modFilePath, selectedProfile string) (*HydroModule, *BuildProfile, error) {
	buff, err := os.ReadFile(modFilePath)
	if err != nil {
		return nil, nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %s", filepath.Base(modFilePath), err)
	}

	// module root is the directory enclosing the module file
	hmod := &HydroModule{ModuleRoot: filepath.Dir(modFilePath)}

	if err := validateModule(hmod, tmf.Module); err != nil {
		return nil, nil, err
	}
	hmod.Name = tmf.Module.Name

	prof, err := selectProfile(tmf.Module, selectedProfile)
	if err != nil {
		return nil, nil, err
	}

	if !filepath.IsAbs(prof.OutputPath) {
		prof.OutputPath = filepath.Join(hmod.ModuleRoot, prof.OutputPath)
	}

	return hmod, prof, nil
}

// validateModule checks that the top level module contents are valid
func validateModule(hmod *HydroModule, mod *tomlModule) error {
	if mod == nil {
		return fmt.Errorf("missing [module] table in module file at %s", hmod.ModuleRoot)
	}

	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", hmod.ModuleRoot)
	}

	if !IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.Version != "" && mod.Version != common.HydroVersion {
		report.ReportModuleWarning(
			mod.Name,
			fmt.Sprintf("module version (v%s) does not match current hydroc version (v%s)", mod.Version, common.HydroVersion),
		)
	}

	return nil
}

// selectProfile selects the named profile, the default profile or the first
// profile of a module and converts it.
func selectProfile(mod *tomlModule, selectedProfile string) (*BuildProfile, error) {
	if len(mod.BuildProfiles) == 0 {
		return nil, fmt.Errorf("module `%s` must provide at least one build profile", mod.Name)
	}

	if selectedProfile != "" {
		for _, prof := range mod.BuildProfiles {
			if prof.Name == selectedProfile {
				return convertProfile(prof)
			}
		}

		return nil, fmt.Errorf("module `%s` has no profile `%s`", mod.Name, selectedProfile)
	}

	for _, prof := range mod.BuildProfiles {
		if prof.DefaultProf {
			return convertProfile(prof)
		}
	}

	return convertProfile(mod.BuildProfiles[0])
}

// convertProfile converts a TOML build profile into a `*BuildProfile`
func convertProfile(tprof *tomlProfile) (*BuildProfile, error) {
	if tprof.Name == "" {
		return nil, errors.New("profile must specify a name")
	}

	if tprof.OutputPath == "" {
		return nil, fmt.Errorf("profile `%s` must specify an output path", tprof.Name)
	}

	if tprof.Format == "" {
		return nil, fmt.Errorf("profile `%s` must specify an output format", tprof.Name)
	}

	newProfile := &BuildProfile{
		Name:              tprof.Name,
		OutputPath:        tprof.OutputPath,
		Assembler:         tprof.Assembler,
		Linker:            tprof.Linker,
		KeepIntermediates: tprof.KeepIntermediates,
	}

	if formatVal, ok := FormatNames[tprof.Format]; ok {
		newProfile.OutputFormat = formatVal
	} else {
		return nil, fmt.Errorf("%s is not a valid output format", tprof.Format)
	}

	if newProfile.Assembler == "" {
		newProfile.Assembler = DefaultAssembler
	}

	if newProfile.Linker == "" {
		newProfile.Linker = DefaultLinker
	}

	return newProfile, nil
}

// DefaultProfile creates the profile used to compile a source file that has no
// module file: it produces assembly next to the source file.
func DefaultProfile(srcPath string) *BuildProfile {
	return &BuildProfile{
		OutputPath:   strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + FormatExtension(FormatASM),
		OutputFormat: FormatASM,
		Assembler:    DefaultAssembler,
		Linker:       DefaultLinker,
	}
}
