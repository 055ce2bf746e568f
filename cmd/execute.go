package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hydroc/build"
	"hydroc/common"
	"hydroc/mods"
	"hydroc/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `hydroc` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("hydroc", "hydroc compiles Hydro programs to x86-64 assembly", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a source file", true)
	buildCmd.AddPrimaryArg("source-path", "the path to the source file to compile", true)
	buildCmd.AddStringArg("output", "o", "the path to write the output to", false)
	buildCmd.AddSelectorArg("format", "m", "the output format", false, []string{"asm", "obj", "exe", "llvm"})
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build with", false)
	buildCmd.AddStringArg("config", "c", "the path to the module file", false)
	buildCmd.AddFlag("dump", "d", "dump the tokens and syntax tree")

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the module", true)

	cli.AddSubcommand("version", "print the hydroc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("usage error: %s", err)
		os.Exit(1)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		report.InitReporter(report.LogLevelNames[result.Arguments["loglevel"].(string)])
		execBuildCommand(subResult)
	case "mod":
		execModCommand(subResult)
	case "version":
		report.DisplayInfoMessage("hydroc version", common.HydroCompilerID)
	}

	if report.AnyErrors() {
		os.Exit(1)
	}
}

// execBuildCommand executes the build subcommand and handles all errors
func execBuildCommand(result *olive.ArgParseResult) {
	// extract CLI data
	srcRelPath, _ := result.PrimaryArg()

	srcPath, err := filepath.Abs(srcRelPath)
	if err != nil {
		report.ReportFatal("path error: %s", err)
		return
	}

	if filepath.Ext(srcPath) != common.SrcFileExtension {
		report.ReportFatal("source file `%s` must have the extension `%s`", srcRelPath, common.SrcFileExtension)
		return
	}

	profile, err := resolveProfile(
		srcPath,
		stringArg(result, "config"),
		stringArg(result, "profile"),
		stringArg(result, "format"),
		stringArg(result, "output"),
	)
	if err != nil {
		report.ReportFatal("module load error: %s", err)
		return
	}

	c := build.NewCompiler(srcPath, profile)
	if result.HasFlag("dump") {
		c.DumpTo(os.Stdout)
	}

	c.Compile()
}

// resolveProfile selects the build profile for a source file and applies the
// command-line overrides to it.  The module file is searched for next to the
// source file if no path is given.  Empty overrides are ignored.
func resolveProfile(srcPath, modFilePath, selectedProfile, formatName, outputPath string) (*mods.BuildProfile, error) {
	if modFilePath == "" {
		modFilePath, _ = mods.FindModuleFile(filepath.Dir(srcPath))
	}

	var profile *mods.BuildProfile
	if modFilePath == "" {
		if selectedProfile != "" {
			return nil, fmt.Errorf("profile `%s` selected but no module file found", selectedProfile)
		}

		profile = mods.DefaultProfile(srcPath)
	} else {
		var err error
		if _, profile, err = mods.LoadModule(modFilePath, selectedProfile); err != nil {
			return nil, err
		}
	}

	if formatName != "" {
		format, ok := mods.FormatNames[formatName]
		if !ok {
			return nil, fmt.Errorf("%s is not a valid output format", formatName)
		}

		profile.OutputFormat = format

		// the default output path follows the format
		if modFilePath == "" {
			profile.OutputPath = strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + mods.FormatExtension(format)
		}
	}

	if outputPath != "" {
		absOutputPath, err := filepath.Abs(outputPath)
		if err != nil {
			return nil, err
		}

		profile.OutputPath = absOutputPath
	}

	return profile, nil
}

// stringArg returns the value of an optional string argument or the empty
// string if it was not given.
func stringArg(result *olive.ArgParseResult, name string) string {
	if argVal, ok := result.Arguments[name]; ok {
		return argVal.(string)
	}

	return ""
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		report.ReportFatal("path error: %s", err)
		return
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			report.ReportFatal("module init error: %s", err)
		}
	}
}
