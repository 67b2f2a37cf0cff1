package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	providerAnnotationTag  = "@provider"
	decoratorAnnotationTag = "@decorator"
	whenAnnotationTag      = "@when"
	injectAnnotationTag    = "@inject"
	configAnnotationTag    = "@config"
)

// key=value or key="value"
var propertyRegexp = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|([\w.-]+))`)

type (
	// Annotation is a @provider or @decorator annotation with the doc text around it.
	Annotation struct {
		logger      *zerolog.Logger
		description string
		properties  map[string]string
		conditions  []WhenAnnotation
	}

	WhenAnnotation struct {
		named    string
		operator string
		value    string
	}

	InjectAnnotation struct {
		logger     *zerolog.Logger
		properties map[string]string
	}
)

func (a Annotation) Priority() (priority int, found bool) {
	if priorityStr, exists := a.properties["priority"]; exists {
		priority, err := strconv.Atoi(priorityStr)
		if err == nil {
			return priority, true
		}
		a.logger.Warn().Msgf("Error parsing priority property: %s, skipping it", priorityStr)
	}
	return 0, false
}

func (a Annotation) Named() (named string, found bool) {
	named, found = a.properties["named"]
	return named, found
}

func parseAnnotation(logger *zerolog.Logger, docText string, tag string) Annotation {
	var (
		descriptionLines []string
		annotationLine   string
		conditions       []WhenAnnotation
	)
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, tag):
			annotationLine = line
		case strings.HasPrefix(line, whenAnnotationTag):
			when, err := parseWhenAnnotation(logger, line)
			if err != nil {
				logger.Warn().Err(err).Msgf("Skipping invalid condition: %s", line)
				continue
			}
			conditions = append(conditions, when)
		case line != "" && !strings.HasPrefix(line, "@"):
			descriptionLines = append(descriptionLines, line)
		}
	}

	return Annotation{
		logger:      logger,
		description: strings.TrimSpace(strings.Join(descriptionLines, "\n")),
		properties:  parseProperties(annotationLine, tag),
		conditions:  conditions,
	}
}

func parseProperties(line string, tag string) map[string]string {
	properties := make(map[string]string)

	content := strings.TrimSpace(strings.TrimPrefix(line, tag))
	if content == "" {
		return properties
	}

	for _, match := range propertyRegexp.FindAllStringSubmatch(content, -1) {
		// match[2] is the quoted value, match[3] the bare one
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[match[1]] = value
	}

	return properties
}

func parseWhenAnnotation(_ *zerolog.Logger, line string) (WhenAnnotation, error) {
	properties := parseProperties(line, whenAnnotationTag)

	named, found := properties["named"]
	if !found {
		return WhenAnnotation{}, errors.New("invalid @when annotation: missing 'named' property")
	}
	if value, found := properties["equals"]; found {
		return WhenAnnotation{named: named, operator: "equals", value: value}, nil
	}
	if value, found := properties["not_equals"]; found {
		return WhenAnnotation{named: named, operator: "not_equals", value: value}, nil
	}
	return WhenAnnotation{}, fmt.Errorf("invalid @when annotation on %s: missing 'equals' or 'not_equals' property", named)
}

// Builder returns the godi condition builder method for the operator.
func (w WhenAnnotation) Builder() string {
	if w.operator == "not_equals" {
		return "NotEquals"
	}
	return "Equals"
}

func (w WhenAnnotation) String() string {
	return fmt.Sprintf("when %s %s %q", w.named, w.operator, w.value)
}

func parseInjectAnnotation(logger *zerolog.Logger, comment string) InjectAnnotation {
	content := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(content, injectAnnotationTag) {
		return InjectAnnotation{logger: logger, properties: make(map[string]string)}
	}

	return InjectAnnotation{
		logger:     logger,
		properties: parseProperties(content, injectAnnotationTag),
	}
}

func (a InjectAnnotation) String() string {
	return fmt.Sprintf("InjectAnnotation(%v)", a.properties)
}

func (a InjectAnnotation) Named() (named string, found bool) {
	named, found = a.properties["named"]
	return named, found
}

func (a InjectAnnotation) Optional() bool {
	return a.boolProperty("optional")
}

func (a InjectAnnotation) Multiple() bool {
	return a.boolProperty("multiple")
}

func (a InjectAnnotation) boolProperty(key string) bool {
	raw, found := a.properties[key]
	if !found {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		a.logger.Warn().Err(err).Msgf("Error parsing %s, not a correct bool", key)
		return false
	}
	return value
}

// Expression renders the godi injection for the parameter.
func (a InjectAnnotation) Expression() string {
	named, hasName := a.Named()
	switch {
	case a.Multiple():
		return "godi.Inject.Multiple()"
	case hasName && a.Optional():
		return fmt.Sprintf("godi.Inject.OptionalNamed(%q)", named)
	case hasName:
		return fmt.Sprintf("godi.Inject.Named(%q)", named)
	case a.Optional():
		return "godi.Inject.Optional()"
	default:
		return "godi.Inject.Auto()"
	}
}
