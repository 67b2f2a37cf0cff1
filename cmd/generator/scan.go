package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/a-peyrard/hello-godi/slices"
	"github.com/rs/zerolog"
)

type (
	ProviderDefinition struct {
		Named       string
		Description string

		FnName     string
		ImportPath string

		Dependencies []InjectAnnotation
		Priority     int

		Conditions []WhenAnnotation
	}

	DecoratorDefinition struct {
		Decorate    string
		Description string

		FnName     string
		ImportPath string

		Dependencies []InjectAnnotation
		Priority     int

		Conditions []WhenAnnotation
	}

	ConfigDefinition struct {
		TypeName   string
		ImportPath string
	}

	RegistryDefinition struct {
		PackageName string
		StructName  string
		ImportPath  string
	}

	// Scan accumulates what was found in the module.
	Scan struct {
		Providers  []ProviderDefinition
		Decorators []DecoratorDefinition
		Configs    []ConfigDefinition
		Registry   *RegistryDefinition
	}
)

func (p ProviderDefinition) String() string {
	return fmt.Sprintf(
		`✨ Provider: %s
Description: %s
Import Path: %s
Named: %s
Priority: %d
Dependencies: [%s]
Conditions: [%s]`,
		p.FnName,
		p.Description,
		p.ImportPath,
		p.Named,
		p.Priority,
		strings.Join(slices.Map(p.Dependencies, InjectAnnotation.String), ", "),
		strings.Join(slices.Map(p.Conditions, WhenAnnotation.String), ", "),
	)
}

func (d DecoratorDefinition) String() string {
	return fmt.Sprintf(
		`🎨️ Decorator: %s
Description: %s
Import Path: %s
Decorate: %s
Priority: %d
Dependencies: [%s]`,
		d.FnName,
		d.Description,
		d.ImportPath,
		d.Decorate,
		d.Priority,
		strings.Join(slices.Map(d.Dependencies, InjectAnnotation.String), ", "),
	)
}

func (c ConfigDefinition) String() string {
	return fmt.Sprintf(
		`📦 Config: %s
Import Path: %s`,
		c.TypeName,
		c.ImportPath,
	)
}

// scanFile collects the annotated declarations of a file.
// The registry struct is only looked for when lookForRegistry is set.
func (s *Scan) scanFile(logger *zerolog.Logger, fset *token.FileSet, file *ast.File, importPath string, lookForRegistry bool) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			s.scanFunc(logger, fset, file, importPath, d)
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				if lookForRegistry && embedsEmptyRegistry(structType) {
					logger.Debug().Str("struct", typeSpec.Name.Name).Msg("=> Found Registry")
					s.Registry = &RegistryDefinition{
						PackageName: file.Name.Name,
						StructName:  typeSpec.Name.Name,
						ImportPath:  importPath,
					}
				}
				if hasAnnotation(configAnnotationTag, d.Doc, typeSpec.Doc) {
					logger.Debug().Str("struct", typeSpec.Name.Name).Msg("=> Found config")
					s.Configs = append(s.Configs, ConfigDefinition{
						TypeName:   typeSpec.Name.Name,
						ImportPath: importPath,
					})
				}
			}
		}
	}
}

func (s *Scan) scanFunc(logger *zerolog.Logger, fset *token.FileSet, file *ast.File, importPath string, fn *ast.FuncDecl) {
	if fn.Doc == nil || fn.Recv != nil {
		return
	}
	doc := fn.Doc.Text()

	switch {
	case strings.Contains(doc, providerAnnotationTag):
		logger := logger.With().Str("provider", fn.Name.Name).Logger()
		logger.Debug().Msg("=> Found provider")

		annotation := parseAnnotation(&logger, doc, providerAnnotationTag)
		named, _ := annotation.Named()
		priority, _ := annotation.Priority()
		s.Providers = append(s.Providers, ProviderDefinition{
			Named:        named,
			Description:  annotation.description,
			FnName:       fn.Name.Name,
			ImportPath:   importPath,
			Dependencies: parseParams(&logger, fset, file, fn),
			Priority:     priority,
			Conditions:   annotation.conditions,
		})

	case strings.Contains(doc, decoratorAnnotationTag):
		logger := logger.With().Str("decorator", fn.Name.Name).Logger()
		logger.Debug().Msg("=> Found decorator")

		annotation := parseAnnotation(&logger, doc, decoratorAnnotationTag)
		decorate, found := annotation.Named()
		if !found {
			logger.Error().Msgf("Decorator %s must have a named property to name the component being decorated", fn.Name.Name)
			return
		}
		params := parseParams(&logger, fset, file, fn)
		if len(params) == 0 {
			logger.Error().Msgf("Decorator %s must take the decorated component as first parameter", fn.Name.Name)
			return
		}
		priority, _ := annotation.Priority()
		s.Decorators = append(s.Decorators, DecoratorDefinition{
			Decorate:     decorate,
			Description:  annotation.description,
			FnName:       fn.Name.Name,
			ImportPath:   importPath,
			Dependencies: params[1:], // the first parameter is the decorated component
			Priority:     priority,
			Conditions:   annotation.conditions,
		})
	}
}

// parseParams reads the @inject annotation of each parameter, one entry per parameter name.
func parseParams(logger *zerolog.Logger, fset *token.FileSet, file *ast.File, fn *ast.FuncDecl) []InjectAnnotation {
	if fn.Type.Params == nil {
		return nil
	}
	var params []InjectAnnotation
	for _, param := range fn.Type.Params.List {
		annotation := parseInjectAnnotation(logger, findCommentForParam(fset, file, param))
		count := len(param.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			params = append(params, annotation)
		}
	}
	return params
}

func findCommentForParam(fset *token.FileSet, file *ast.File, param *ast.Field) string {
	paramLine := fset.Position(param.Pos()).Line

	for _, commentGroup := range file.Comments {
		for _, comment := range commentGroup.List {
			if fset.Position(comment.Pos()).Line == paramLine {
				return comment.Text
			}
		}
	}
	return ""
}

func embedsEmptyRegistry(structType *ast.StructType) bool {
	for _, field := range structType.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		sel, ok := field.Type.(*ast.SelectorExpr)
		if !ok {
			continue
		}
		if ident, ok := sel.X.(*ast.Ident); ok && ident.Name == "godi" && sel.Sel.Name == "EmptyRegistry" {
			return true
		}
	}
	return false
}

func hasAnnotation(tag string, docs ...*ast.CommentGroup) bool {
	for _, doc := range docs {
		if doc != nil && strings.Contains(doc.Text(), tag) {
			return true
		}
	}
	return false
}
