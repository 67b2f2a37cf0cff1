package main

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/a-peyrard/hello-godi/set"
	"github.com/a-peyrard/hello-godi/slices"
)

const godiImportPath = "github.com/a-peyrard/hello-godi/godi"

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by hello-godi generator. DO NOT EDIT.

package {{ .PackageName }}

import (
{{- range .Imports }}
	{{ if .Explicit }}{{ .Alias }} {{ end }}"{{ .Path }}"
{{- end }}
)

// Register registers all the annotated components of the module.
func ({{ .StructName }}) Register(resolver *godi.Resolver) {
{{- range .Configs }}
	resolver.MustRegister(&godi.ConfigFieldProvider[{{ . }}]{})
{{- end }}
{{- range .Providers }}
	resolver.MustRegister(
		{{ .Func }},
{{- range .Options }}
		{{ . }},
{{- end }}
	)
{{- end }}
{{- range .Decorators }}
	resolver.MustRegisterDecorator(
		{{ .Func }},
{{- range .Options }}
		{{ . }},
{{- end }}
	)
{{- end }}
}
`))

type (
	importLine struct {
		Alias    string
		Path     string
		Explicit bool
	}

	registration struct {
		Func    string
		Options []string
	}

	registryData struct {
		PackageName string
		StructName  string
		Imports     []importLine
		Configs     []string
		Providers   []registration
		Decorators  []registration
	}
)

// generateCode renders the Register method of the registry, gofmt-ed.
func generateCode(scan *Scan) ([]byte, error) {
	if scan.Registry == nil {
		return nil, fmt.Errorf("no registry found")
	}

	providers := append([]ProviderDefinition(nil), scan.Providers...)
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].ImportPath+"."+providers[i].FnName < providers[j].ImportPath+"."+providers[j].FnName
	})
	decorators := append([]DecoratorDefinition(nil), scan.Decorators...)
	sort.SliceStable(decorators, func(i, j int) bool {
		return decorators[i].ImportPath+"."+decorators[i].FnName < decorators[j].ImportPath+"."+decorators[j].FnName
	})

	imports := newImports(scan.Registry.ImportPath)
	data := registryData{
		PackageName: scan.Registry.PackageName,
		StructName:  scan.Registry.StructName,
	}
	for _, c := range scan.Configs {
		data.Configs = append(data.Configs, generateFQN(imports.use(c.ImportPath), c.TypeName, imports.aliases))
	}
	for _, p := range providers {
		var options []string
		if p.Named != "" {
			options = append(options, fmt.Sprintf("godi.Named(%q)", p.Named))
		}
		options = append(options, commonOptions(p.Priority, p.Description, p.Dependencies, p.Conditions)...)
		data.Providers = append(data.Providers, registration{
			Func:    generateFQN(imports.use(p.ImportPath), p.FnName, imports.aliases),
			Options: options,
		})
	}
	for _, d := range decorators {
		options := []string{fmt.Sprintf("godi.Decorate(%q)", d.Decorate)}
		options = append(options, commonOptions(d.Priority, d.Description, d.Dependencies, d.Conditions)...)
		data.Decorators = append(data.Decorators, registration{
			Func:    generateFQN(imports.use(d.ImportPath), d.FnName, imports.aliases),
			Options: options,
		})
	}
	data.Imports = imports.lines()

	var buf bytes.Buffer
	if err := registryTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render registry:\n\t%w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code:\n\t%w\n%s", err, buf.String())
	}
	return formatted, nil
}

func commonOptions(priority int, description string, deps []InjectAnnotation, conditions []WhenAnnotation) []string {
	var options []string
	if priority != 0 {
		options = append(options, fmt.Sprintf("godi.Priority(%d)", priority))
	}
	if description != "" {
		options = append(options, fmt.Sprintf("godi.Description(%s)", strconv.Quote(description)))
	}
	expressions := slices.Map(deps, InjectAnnotation.Expression)
	if len(slices.Filter(expressions, func(e string) bool { return e != "godi.Inject.Auto()" })) > 0 {
		options = append(options, fmt.Sprintf("godi.Dependencies(%s)", strings.Join(expressions, ", ")))
	}
	for _, c := range conditions {
		options = append(options, fmt.Sprintf("godi.When(%q).%s(%q)", c.named, c.Builder(), c.value))
	}
	return options
}

type imports struct {
	self    string
	aliases map[string]string
	taken   set.Set[string]
	order   []string
}

func newImports(self string) *imports {
	i := &imports{
		self:    self,
		aliases: map[string]string{},
		taken:   set.New[string](),
	}
	i.use(godiImportPath)
	return i
}

// use registers the import path and returns it, or "" for the package of the registry itself.
func (i *imports) use(importPath string) string {
	if importPath == "" || importPath == i.self {
		return ""
	}
	if _, found := i.aliases[importPath]; !found {
		alias := findSuitableAlias(importPath, i.taken)
		i.taken.Add(alias)
		i.aliases[importPath] = alias
		i.order = append(i.order, importPath)
	}
	return importPath
}

func (i *imports) lines() []importLine {
	paths := append([]string(nil), i.order...)
	sort.Strings(paths)
	return slices.Map(paths, func(path string) importLine {
		alias := i.aliases[path]
		return importLine{
			Alias:    alias,
			Path:     path,
			Explicit: alias != lastToken(path),
		}
	})
}

// findSuitableAlias uses the last token of the import path, prefixed by the initials of the previous
// tokens, then suffixed by a counter, until there is no collision.
func findSuitableAlias(importPath string, taken set.Set[string]) string {
	tokens := strings.Split(importPath, "/")
	alias := sanitizeIdentifier(tokens[len(tokens)-1])
	for idx := len(tokens) - 2; taken.Contains(alias) && idx >= 0; idx-- {
		alias = firstLetter(tokens[idx]) + alias
	}
	if !taken.Contains(alias) {
		return alias
	}
	for counter := 0; ; counter++ {
		candidate := alias + strconv.Itoa(counter)
		if !taken.Contains(candidate) {
			return candidate
		}
	}
}

func generateFQN(importPath string, typeName string, importWithAlias map[string]string) string {
	if importPath == "" {
		return typeName
	}
	pointer := ""
	if strings.HasPrefix(typeName, "*") {
		pointer = "*"
		typeName = strings.TrimPrefix(typeName, "*")
	}
	return pointer + importWithAlias[importPath] + "." + typeName
}

func lastToken(importPath string) string {
	tokens := strings.Split(importPath, "/")
	return tokens[len(tokens)-1]
}

func firstLetter(token string) string {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return string(unicode.ToLower(r))
		}
	}
	return ""
}

func sanitizeIdentifier(token string) string {
	var b strings.Builder
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "pkg"
	}
	return b.String()
}
