// Command wisp is the front-end's CLI entry point: it parses wisp source
// into its parse tree and stops there (spec's codegen Non-goal — this
// front-end does not invoke a backend). Grounded on the teacher's root
// main.go, with `build`/`dump`/`typeinfo` renamed to `parse`/`sections`/
// `modinfo` to match the new scope.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/wisp/diag"
	"github.com/pontaoski/wisp/lexer"
	"github.com/pontaoski/wisp/modinfo"
	"github.com/pontaoski/wisp/parser"
	"github.com/pontaoski/wisp/section"
)

// sourceExt is the extension a wisp source file carries, standing in for
// the teacher's ".Tawa Source File" suffix convention.
const sourceExt = ".wisp"

func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), sourceExt) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func lexAndSection(path string) ([]section.Section, []diag.Diagnostic, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer fi.Close()

	toks, lexDiags := lexer.New(fi, path).Tokenize()
	sections, secDiags := section.Run(toks)
	return sections, append(lexDiags, secDiags...), nil
}

func printDiags(path string, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, d.Error())
	}
}

func main() {
	app := &cli.App{
		Name:  "wisp",
		Usage: "wisp front-end: lexer, sectioning, and parser",
		ExitErrHandler: func(c *cli.Context, err error) {
			tracerr.PrintSourceColor(tracerr.Wrap(err))
			os.Exit(1)
		},
		Commands: []*cli.Command{
			initCommand,
			sectionsCommand,
			parseCommand,
			modinfoCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		tracerr.PrintSourceColor(tracerr.Wrap(err))
		os.Exit(1)
	}
}

var initCommand = &cli.Command{
	Name:  "init",
	Usage: "create a Wisp Module Information manifest in the current directory",
	Action: func(c *cli.Context) error {
		name := c.Args().First()
		if name == "" {
			return fmt.Errorf("init requires a package name")
		}
		return modinfo.WriteManifest(".", modinfo.Manifest{Package: name})
	},
}

var sectionsCommand = &cli.Command{
	Name:  "sections",
	Usage: "dump the section tree for every source file in the current directory",
	Action: func(c *cli.Context) error {
		files, err := sourceFiles(".")
		if err != nil {
			return err
		}
		for _, path := range files {
			sections, diags := mustLexAndSection(path)
			printDiags(path, diags)
			repr.Println(sections)
		}
		return nil
	},
}

var parseCommand = &cli.Command{
	Name:  "parse",
	Usage: "parse every source file in the current directory and dump its parse tree",
	Action: func(c *cli.Context) error {
		files, err := sourceFiles(".")
		if err != nil {
			return err
		}
		for _, path := range files {
			sections, diags := mustLexAndSection(path)
			printDiags(path, diags)

			file, parseDiags := parser.ParseFile(sections)
			printDiags(path, parseDiags)
			repr.Println(file)
		}
		return nil
	},
}

var modinfoCommand = &cli.Command{
	Name:  "modinfo",
	Usage: "dump the embedded type table from a compiled wisp module",
	Action: func(c *cli.Context) error {
		path := c.Args().Get(0)
		if path == "" {
			return fmt.Errorf("modinfo requires a path to a compiled module")
		}
		info, err := modinfo.ReadTypeInfo(path)
		if err != nil {
			return err
		}
		repr.Println(info)
		return nil
	},
}

func mustLexAndSection(path string) ([]section.Section, []diag.Diagnostic) {
	sections, diags, err := lexAndSection(path)
	if err != nil {
		tracerr.PrintSourceColor(tracerr.Wrap(err))
		os.Exit(1)
	}
	return sections, diags
}
