// cmd/sologen/main.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// This binary is a code-generation tool.
//
// It reads a JSON specification describing a concrete type and its constructor,
// then generates a package-level single-instance accessor built on solo.Lazy.
//
// Key behaviors:
// - Reads spec JSON: package, typeName, constructor, accessor
// - Locates the "owner" Go file (the file containing the go:generate for cmd/sologen) in the same directory
// - Consults the owner file's imports so the generated file reuses the package's solo import path and alias
// - Guarantees an import usable as identifier `solo` (owner import or spec fallback)
// - Auto-detects whether the constructor returns (*T, error) or just *T
// - Writes output atomically (temp file + rename) to avoid partial writes

// Imports defines external packages required by the generated code.
//
// Solo is a fallback: we prefer reading imports from the owner file and only
// use this path when the owner imports do not provide a usable `solo` identifier.
type Imports struct {
	Solo string `json:"solo"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package string `json:"package"`

	// TypeName is the concrete type guarded by the generated holder.
	// Generated code refers to *TypeName.
	TypeName string `json:"typeName"`

	// Constructor is a free function in the target package building the instance.
	Constructor string `json:"constructor"`

	// Accessor is the exported base name for the generated functions:
	// Accessor(), MustAccessor(), AccessorInitialized(), ResetAccessorForTest().
	Accessor string `json:"accessor"`

	Imports Imports `json:"imports"`

	// ConstructorReturnsError is optional:
	// - nil: auto-detect by parsing the constructor signature
	// - true/false: explicit override
	ConstructorReturnsError *bool `json:"constructorReturnsError"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string
	Path  string
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec             Spec
	ImportsList      []ImportSpec
	HolderVar        string
	CtorReturnsError bool
}

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("sologen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to type.single.json")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: sologen -spec <file.single.json> -out <file.gen.go>")
		return 2
	}

	specBytes, err := os.ReadFile(*specPath)
	must(err)

	var spec Spec
	must(json.Unmarshal(specBytes, &spec))

	validateSpec(&spec)

	generatedFilePath := filepath.Clean(*outPath)
	packageDir := filepath.Dir(generatedFilePath)

	ownerGoFilePath, err := findOwnerGoGenerateFile(packageDir)
	if err != nil {
		// If we can’t find the owner file, we can still generate.
		// resolveImports will fall back to spec.imports.solo when needed.
		ownerGoFilePath = ""
	}

	ctorReturnsError := determineConstructorReturnsError(&spec, packageDir)

	importsList, err := resolveImports(ownerGoFilePath, &spec)
	if err != nil {
		// This is user-actionable: it means we can’t produce valid imports for solo.Lazy.
		panic(err)
	}

	data := templateData{
		Spec:             spec,
		ImportsList:      importsList,
		HolderVar:        unexport(spec.Accessor) + "Holder",
		CtorReturnsError: ctorReturnsError,
	}

	var out strings.Builder
	must(genTemplate.Execute(&out, data))

	must(writeFileAtomic(generatedFilePath, []byte(out.String()), 0o644))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// validateSpec validates semantic correctness of the input specification.
func validateSpec(spec *Spec) {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	requireNonEmpty("typeName", spec.TypeName)
	requireNonEmpty("constructor", spec.Constructor)
	requireNonEmpty("accessor", spec.Accessor)

	if len(missingFields) > 0 {
		panic(fmt.Errorf("spec missing required fields: %v", missingFields))
	}

	if !isExportedIdent(spec.Accessor) {
		panic(fmt.Errorf("accessor must be an exported identifier, got: %s", spec.Accessor))
	}
	if spec.Accessor == spec.Constructor {
		panic(fmt.Errorf("accessor and constructor must differ, both are: %s", spec.Accessor))
	}
}

// isExportedIdent reports whether s starts with an upper-case letter.
func isExportedIdent(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// unexport lowers the first rune (Shared -> shared) for the private holder var.
func unexport(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// findOwnerGoGenerateFile finds the Go source file in packageDir that contains a go:generate
// directive invoking cmd/sologen.
//
// This is used to discover which solo import the owner file already carries.
func findOwnerGoGenerateFile(packageDir string) (string, error) {
	dirEntries, err := os.ReadDir(packageDir)
	if err != nil {
		return "", err
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(packageDir, fileName)
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			// Best-effort: unreadable file shouldn’t break generation.
			continue
		}

		if bytes.Contains(fileBytes, []byte("go:generate")) && bytes.Contains(fileBytes, []byte("cmd/sologen")) {
			return filePath, nil
		}
	}

	return "", fmt.Errorf("could not find owner file with go:generate invoking cmd/sologen in %s", packageDir)
}

// readImportsFromFile parses imports from a Go file.
func readImportsFromFile(goFilePath string) ([]ImportSpec, error) {
	fileSet := token.NewFileSet()
	parsedFile, err := parser.ParseFile(fileSet, goFilePath, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	var imports []ImportSpec
	for _, importDecl := range parsedFile.Imports {
		importPath := strings.Trim(importDecl.Path.Value, `"`)
		importAlias := ""
		if importDecl.Name != nil {
			importAlias = importDecl.Name.Name
		}
		imports = append(imports, ImportSpec{Alias: importAlias, Path: importPath})
	}

	return imports, nil
}

func ensureImport(imports *[]ImportSpec, required ImportSpec) {
	for _, existing := range *imports {
		if existing.Path == required.Path {
			// Don’t duplicate the path; keep existing alias as-is.
			return
		}
	}
	*imports = append(*imports, required)
}

func containsAlias(imports []ImportSpec, alias string) bool {
	for _, existing := range imports {
		if existing.Alias == alias && alias != "" {
			return true
		}
	}
	return false
}

func containsPath(imports []ImportSpec, importPath string) bool {
	for _, existing := range imports {
		if existing.Path == importPath {
			return true
		}
	}
	return false
}

func importDefaultIdent(importPath string) string {
	// Import paths always use forward slashes, even on Windows.
	return path.Base(strings.TrimSpace(importPath))
}

// resolveImports decides the single import of the generated file.
//
// Generated code references nothing but `solo`, so unlike broader generators
// we must not copy the owner file's whole import block (anything unused would
// break compilation). The owner file is only consulted to discover which solo
// import path (and alias form) the package already uses.
//
// Rules:
//   - Owner imports something aliased `solo "..."`: reuse path and alias.
//   - Owner imports a path whose default identifier is `solo`: reuse it as-is.
//   - Otherwise fall back to spec.imports.solo, imported as `solo "..."`.
func resolveImports(ownerFilePath string, spec *Spec) ([]ImportSpec, error) {
	// Read owner imports, best-effort.
	var importsFromOwner []ImportSpec
	if strings.TrimSpace(ownerFilePath) != "" {
		parsedOwnerImports, err := readImportsFromFile(ownerFilePath)
		if err == nil {
			importsFromOwner = parsedOwnerImports
		}
		// If parsing fails, fall back to empty and rely on spec fallback behavior.
	}

	for _, imp := range importsFromOwner {
		if imp.Alias == "solo" {
			return []ImportSpec{imp}, nil
		}
	}
	for _, imp := range importsFromOwner {
		if imp.Alias == "" && importDefaultIdent(imp.Path) == "solo" {
			return []ImportSpec{imp}, nil
		}
	}

	// Otherwise we must use the fallback solo import from the spec.
	if strings.TrimSpace(spec.Imports.Solo) == "" {
		return nil, fmt.Errorf(
			"generated code requires the solo package, but no import usable as identifier `solo` was found in the owner file and spec.imports.solo is empty",
		)
	}

	var finalImports []ImportSpec
	ensureImport(&finalImports, ImportSpec{Alias: "solo", Path: spec.Imports.Solo})
	return finalImports, nil
}

// determineConstructorReturnsError decides whether the constructor returns (*T, error).
//
// Behavior:
// - If spec.ConstructorReturnsError != nil, return it (explicit override).
// - Otherwise, parse files in sourceDir and find a free function named spec.Constructor.
// - If found:
//   - Exactly one result -> false (plain *T constructor)
//   - Exactly two results -> true
//   - Unrecognized signature -> true (safest default: the template then forwards
//     the constructor's own error)
//
// - If not found or we cannot read/parse reliably -> true (safest default)
func determineConstructorReturnsError(spec *Spec, sourceDir string) bool {
	if spec.ConstructorReturnsError != nil {
		return *spec.ConstructorReturnsError
	}

	dirEntries, err := os.ReadDir(sourceDir)
	if err != nil {
		// Safest default: assume (*T, error).
		return true
	}

	fileSet := token.NewFileSet()

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(sourceDir, fileName)

		// Parse with AllErrors so we can still get partial ASTs when possible.
		parsedFile, parseErr := parser.ParseFile(fileSet, filePath, nil, parser.AllErrors)
		if parsedFile == nil {
			_ = parseErr
			continue
		}

		for _, declaration := range parsedFile.Decls {
			funcDecl, ok := declaration.(*ast.FuncDecl)
			if !ok {
				continue
			}

			// Ignore methods; only free functions are constructors.
			if funcDecl.Recv != nil {
				continue
			}

			if funcDecl.Name == nil || funcDecl.Name.Name != spec.Constructor {
				continue
			}

			results := funcDecl.Type.Results
			if results == nil || len(results.List) == 0 {
				// A constructor with no results can't feed a holder; the
				// generated code won't compile either way, so keep the default.
				return true
			}

			if len(results.List) == 1 {
				return false
			}
			if len(results.List) == 2 {
				return true
			}

			// Unrecognized signature => safest default.
			return true
		}
	}

	// Constructor not found => safest default.
	return true
}

// genTemplate is the Go source template used to generate the accessor code.
var genTemplate = template.Must(
	template.New("sologen").Parse(`// Code generated by sologen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{range .ImportsList}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}
)

// {{.HolderVar}} guards the process-wide *{{.Spec.TypeName}} instance.
var {{.HolderVar}} = solo.Lazy(func() (*{{.Spec.TypeName}}, error) {
{{- if .CtorReturnsError}}
	return {{.Spec.Constructor}}()
{{- else}}
	return {{.Spec.Constructor}}(), nil
{{- end}}
})

// {{.Spec.Accessor}} returns the shared *{{.Spec.TypeName}}, constructing it on first call.
// Every later call returns the identical instance (or the recorded construction error).
func {{.Spec.Accessor}}() (*{{.Spec.TypeName}}, error) {
	return {{.HolderVar}}.Get()
}

// Must{{.Spec.Accessor}} returns the shared *{{.Spec.TypeName}} or panics with the construction error.
func Must{{.Spec.Accessor}}() *{{.Spec.TypeName}} {
	return {{.HolderVar}}.MustGet()
}

// {{.Spec.Accessor}}Initialized reports whether construction has run.
func {{.Spec.Accessor}}Initialized() bool {
	return {{.HolderVar}}.Initialized()
}

// Reset{{.Spec.Accessor}}ForTest re-arms the holder so tests can rebuild the instance.
func Reset{{.Spec.Accessor}}ForTest() {
	{{.HolderVar}}.Reset()
}
`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	if err = renameFile(tmpPath, targetPath); err != nil {
		return err
	}
	return nil
}

// must panics if err is non-nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
