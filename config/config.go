package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/a-peyrard/hello-godi/option"
	"github.com/a-peyrard/hello-godi/reflectutils"
	"github.com/a-peyrard/hello-godi/str"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix     string
		dotEnvs    []string
		configFile string
	}

	WithDefault interface {
		ApplyDefault()
	}
)

func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithDotEnv loads the given .env files into the environment before reading it.
// Missing files are ignored, and variables already set are never overridden.
func WithDotEnv(paths ...string) option.Option[Options] {
	return func(opts *Options) {
		opts.dotEnvs = append(opts.dotEnvs, paths...)
	}
}

// WithConfigFile reads the given file (any format viper knows) as a base layer, environment wins over it.
// An empty path is a no-op.
func WithConfigFile(path string) option.Option[Options] {
	return func(opts *Options) {
		opts.configFile = path
	}
}

func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Apply(&Options{}, opts...)

	if err := loadDotEnvs(options.dotEnvs); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if options.configFile != "" {
		v.SetConfigFile(options.configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s: %w", options.configFile, err)
		}
	}

	var vT T
	bindEnvs(v, options.prefix, reflect.New(reflect.TypeOf(vT)).Elem().Interface())

	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	withDefaultValueType := reflect.TypeOf((*WithDefault)(nil)).Elem()
	callApplyDefault := func(val reflect.Value, typ reflect.Type, _ []string) {
		if typ.Implements(withDefaultValueType) {
			if val.IsValid() {
				val.Interface().(WithDefault).ApplyDefault()
			}
		}
	}
	reflectutils.WalkStruct(
		&vT,
		reflectutils.Visitors(
			reflectutils.InitNilStructs,
			reflectutils.InitNilSlices,
			callApplyDefault,
		),
	)

	return &vT, nil
}

func loadDotEnvs(paths []string) error {
	existing := make([]string, 0, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		existing = append(existing, path)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("unable to load env files %v: %w", existing, err)
	}
	return nil
}

func bindEnvs(viperI *viper.Viper, envPrefix string, myStruct any, parts ...string) {
	ifv := reflect.ValueOf(myStruct)
	ift := reflect.TypeOf(myStruct)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			tv = t.Name
		}
		switch v.Kind() {
		case reflect.Struct:
			bindEnvs(viperI, envPrefix, v.Interface(), append(parts, tv)...)
		case reflect.Pointer:
			if t.Type.Elem().Kind() == reflect.Struct {
				bindEnvs(viperI, envPrefix, reflect.Zero(t.Type.Elem()).Interface(), append(parts, tv)...)
			}
		default:
			key := strings.Join(append(parts, tv), ".")
			join := strings.Join(append(parts, str.ToScreamingSnakeCase(tv)), ".")
			_ = viperI.BindEnv(key, mergeWithEnvPrefix(envPrefix, join))
		}
	}
}

func mergeWithEnvPrefix(envPrefix string, in string) string {
	if envPrefix != "" {
		return strings.ToUpper(envPrefix + "_" + in)
	}

	return strings.ToUpper(in)
}
