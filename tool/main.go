// Command adtgen reads a small type-declaration DSL and emits the Go
// sum-type boilerplate (marker interface + implementing structs +
// marker methods) for a package. Retargeted from tawa's own AST, whose
// variants were a single wrapped type each (`Integer of int64`), to
// wisp's richer grammar, whose variants carry several named fields and
// a trailing source.Range (`Print of { Value Expression; Rng Range }`)
// — see ast.decl. ast/ast.go is checked in and hand-tended from this
// generator's output over ast.decl, with the non-sum declarations
// (Param, BinaryOp/UnaryOp and their String() methods, File) the DSL has
// no notion of added; ast.decl's header lists where the two differ.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

const sourcePkg = "github.com/pontaoski/wisp/source"

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

// Field is one `name Type` pair inside a variant's `{ ... }` field list.
type Field struct {
	Name string `@Ident`
	Kind string `@Ident`
}

// TCase is one `Name of Kind` or `Name of { field* }` variant of a sum
// type. Kind is set for the former (a type alias variant, tawa's only
// shape); Fields is set for the latter (a struct variant, needed for
// every wisp AST node since they all carry more than one field).
type TCase struct {
	Name   string   `@Ident "of"`
	Kind   *string  `( (@Ident | @String | @RawString)`
	Fields *[]Field `| "{" (@@ ";")* "}" )`
}

type Declaration struct {
	Name  string   `"type" @Ident "="`
	Plain *string  `(  (@Ident | @String | @RawString)`
	Many  *[]TCase ` | ("|" @@)*)`
	I     struct{} `";"`
}

func (t *TypeDecls) IsSumType(name string) bool {
	for _, decls := range t.Declarations {
		if decls.Name == name && decls.Many != nil {
			return true
		}
	}
	return false
}

// goType resolves a DSL field type to the Go type it should render as.
// "Range" is special-cased to source.Range, qualified from the wisp
// source package, since every wisp AST node ends in `Rng Range`.
func goType(name string) *Statement {
	if name == "Range" {
		return Qual(sourcePkg, "Range")
	}
	return Id(name)
}

func GenerateDecls(pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)

	for _, decl := range t.Declarations {
		if decl.Plain != nil {
			f.Type().Id(decl.Name).Id(*decl.Plain)
			continue
		}
		if decl.Many == nil {
			continue
		}

		f.Type().Id(decl.Name).Interface(
			Id("is_"+decl.Name).Params(),
			Id("Range").Params().Qual(sourcePkg, "Range"),
		)

		for _, it := range *decl.Many {
			switch {
			case it.Fields != nil:
				var fields []Code
				hasRng := false
				for _, fld := range *it.Fields {
					fields = append(fields, Id(fld.Name).Add(goType(fld.Kind)))
					if fld.Name == "Rng" {
						hasRng = true
					}
				}
				f.Type().Id(it.Name).Struct(fields...)
				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
				if hasRng {
					f.Func().Params(Id("v").Id(it.Name)).Id("Range").Params().Qual(sourcePkg, "Range").Block(
						Return(Id("v").Dot("Rng")),
					)
				}
			case it.Kind != nil:
				if t.IsSumType(*it.Kind) {
					f.Type().Id(it.Name).Struct(Id(*it.Kind))
				} else {
					f.Type().Id(it.Name).Id(*it.Kind)
				}
				f.Func().Params(Id("v").Id(it.Name)).Id("is_" + decl.Name).Params().Block()
			}
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	parser := participle.MustBuild(&TypeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := TypeDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, &decls)), os.ModePerm)
	if err != nil {
		panic(err)
	}
}
