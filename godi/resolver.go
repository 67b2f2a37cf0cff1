package godi

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/a-peyrard/hello-godi/option"
	"github.com/rs/zerolog"
)

const ResolverName = "godi.resolver"

type (
	Name struct {
		name string
		typ  reflect.Type
	}

	Request struct {
		unitaryTyp reflect.Type
		query      query
		validator  validator
		collector  collector
		tracker    *Tracker
	}

	Resolver struct {
		providers  *orderedList[Provider]
		decorators *orderedList[Decorator]
		store      *Store
		locks      *buildLocks

		logger *zerolog.Logger
		closed atomic.Bool
	}

	// Closeable is an interface that can be used to close resources.
	Closeable interface {
		Close() error
	}

	Registrable = any

	RegistrableOptions struct {
		named        string
		priority     int
		dependencies []dependency
		conditions   []condition
		decorate     *string

		description string
	}

	ResolverOptions struct {
		logger *zerolog.Logger
	}
)

func Named(name string) option.Option[RegistrableOptions] {
	return func(opts *RegistrableOptions) {
		opts.named = name
	}
}

func Priority(priority int) option.Option[RegistrableOptions] {
	return func(opts *RegistrableOptions) {
		opts.priority = priority
	}
}

// Dependencies describes how to inject the parameters of a factory method, by position.
// Parameters without a description are injected by type.
func Dependencies(dependencies ...dependency) option.Option[RegistrableOptions] {
	return func(opts *RegistrableOptions) {
		opts.dependencies = dependencies
	}
}

func Description(description string) option.Option[RegistrableOptions] {
	return func(opts *RegistrableOptions) {
		opts.description = description
	}
}

// Decorate names the component a decorator applies to.
func Decorate(name string) option.Option[RegistrableOptions] {
	return func(opts *RegistrableOptions) {
		opts.decorate = &name
	}
}

// WithLogger sets the logger used to trace resolutions, defaults to a no-op logger.
func WithLogger(logger *zerolog.Logger) option.Option[ResolverOptions] {
	return func(opts *ResolverOptions) {
		opts.logger = logger
	}
}

func NewName(name string, typ reflect.Type) Name {
	return Name{name: name, typ: typ}
}

func (n Name) Name() string {
	return n.name
}

func (n Name) Type() reflect.Type {
	return n.typ
}

func (n Name) String() string {
	return fmt.Sprintf("(%s, %s)", n.name, n.typ.String())
}

func (r Request) String() string {
	return fmt.Sprintf("{q=%s v=%s c=%s}", r.query, r.validator, r.collector)
}

func New(opts ...option.Option[ResolverOptions]) *Resolver {
	nop := zerolog.Nop()
	options := option.Apply(
		&ResolverOptions{logger: &nop},
		opts...,
	)

	r := &Resolver{
		// highest priority first for providers, lowest first for decorators
		providers:  newOrderedList(func(a, b Provider) int { return compareByPriority(b, a) }),
		decorators: newOrderedList(compareByPriority[Decorator]),
		store:      NewStore(),
		locks:      newBuildLocks(),

		logger: options.logger,
	}

	// Register itself as a static provider.
	//
	// If providers want to resolve the resolver to be able to dynamically resolve dependencies
	r.MustRegister(ToStaticProvider(r), Named(ResolverName))

	return r
}

func (r *Resolver) Register(reg Registrable, opts ...option.Option[RegistrableOptions]) error {
	if reg == nil {
		return errors.New("provider must not be nil")
	}

	var (
		t        = reflect.TypeOf(reg)
		provider Provider
		err      error
	)
	if t.Kind() == reflect.Func {
		provider, err = NewFactoryMethodProvider(reg, opts...)
		if err != nil {
			return fmt.Errorf("failed to create factory method provider for %T:\n\t%w", reg, err)
		}
	} else if t.Implements(ProviderType) {
		provider = reg.(Provider)
	} else {
		return errors.New("provider must be either a function or a Provider implementation")
	}

	if !r.validateConditions(opts) {
		r.logger.Debug().Msgf("conditions not met, skipping provider %s", describe(provider))
		return nil
	}

	r.providers.insert(provider)

	return nil
}

func (r *Resolver) MustRegister(reg Registrable, opts ...option.Option[RegistrableOptions]) *Resolver {
	err := r.Register(reg, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to register provider %T:\n\t%v", reg, err))
	}
	return r
}

// RegisterDecorator registers a factory method wrapping the component named with the Decorate option.
// Decorators of the same component are applied by ascending priority.
func (r *Resolver) RegisterDecorator(factoryMethod any, opts ...option.Option[RegistrableOptions]) error {
	decorator, err := NewFactoryMethodDecorator(factoryMethod, opts...)
	if err != nil {
		return fmt.Errorf("failed to create factory method decorator for %T:\n\t%w", factoryMethod, err)
	}

	if !r.validateConditions(opts) {
		r.logger.Debug().Msgf("conditions not met, skipping decorator %s", describe(decorator))
		return nil
	}

	r.decorators.insert(decorator)

	return nil
}

func (r *Resolver) MustRegisterDecorator(factoryMethod any, opts ...option.Option[RegistrableOptions]) *Resolver {
	err := r.RegisterDecorator(factoryMethod, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to register decorator %T:\n\t%v", factoryMethod, err))
	}
	return r
}

func (r *Resolver) validateConditions(opts []option.Option[RegistrableOptions]) bool {
	options := option.Apply(
		&RegistrableOptions{},
		opts...,
	)

	for _, cond := range options.conditions {
		if !r.validateCondition(cond) {
			return false
		}
	}
	return true
}

func (r *Resolver) validateCondition(cond condition) bool {
	val, found, err := r.resolve(Request{
		unitaryTyp: StringType,
		query: queryByName{
			name: Name{
				name: cond.namedStringComponent,
				typ:  StringType,
			},
		},
		validator: validatorUniqueOptional{},
		collector: collectorUnique{},
	})
	if err != nil || !found {
		return false
	}

	return cond.operator(val.String(), cond.value)
}

func tryGetAt[T any](slice []T, index int) (val T, found bool) {
	if index < 0 || index >= len(slice) {
		return val, false
	}
	return slice[index], true
}

// Close closes all the built components implementing Closeable.
func (r *Resolver) Close() error {
	// the resolver is a component of itself, don't close it twice
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.store.Close()
}

// Resolve attempts to resolve a component of type T from the resolver.
func Resolve[T any](resolver *Resolver) (T, error) {
	lookFor := TypeOf[T]()

	val, _, err := resolveTyped[T](
		resolver,
		Request{
			unitaryTyp: lookFor,
			query:      queryByType{typ: lookFor},
			validator:  validatorUniqueMandatory{},
			collector:  collectorUnique{},
		},
	)
	return val, err
}

// ResolveNamed attempts to resolve a named component of type T from the resolver.
func ResolveNamed[T any](resolver *Resolver, name string) (T, error) {
	lookFor := TypeOf[T]()

	val, _, err := resolveTyped[T](
		resolver,
		Request{
			unitaryTyp: lookFor,
			query: queryByName{
				name: Name{name: name, typ: lookFor},
			},
			validator: validatorUniqueMandatory{},
			collector: collectorUnique{},
		},
	)
	return val, err
}

// ResolveAll attempts to resolve all components of type T from the resolver.
func ResolveAll[T any](resolver *Resolver) ([]T, error) {
	lookFor := TypeOf[T]()

	val, _, err := resolveTyped[[]T](
		resolver,
		Request{
			unitaryTyp: lookFor,
			query:      queryByType{typ: lookFor},
			validator:  validatorMultiple{},
			collector:  collectorMultipleAsSlice{},
		},
	)
	return val, err
}

// TryResolve attempts to resolve a component of type T from the resolver.
//
// It returns the resolved value, a boolean indicating if it was found, and an error if any occurred during resolution.
func TryResolve[T any](resolver *Resolver) (value T, found bool, err error) {
	lookFor := TypeOf[T]()

	return resolveTyped[T](
		resolver,
		Request{
			unitaryTyp: lookFor,
			query:      queryByType{typ: lookFor},
			validator:  validatorUniqueOptional{},
			collector:  collectorUnique{},
		},
	)
}

// TryResolveNamed attempts to resolve a component of name n from the resolver.
//
// It returns the resolved value, a boolean indicating if it was found, and an error if any occurred during resolution.
func TryResolveNamed[T any](resolver *Resolver, name string) (value T, found bool, err error) {
	lookFor := TypeOf[T]()

	return resolveTyped[T](
		resolver,
		Request{
			unitaryTyp: lookFor,
			query: queryByName{
				name: Name{name: name, typ: lookFor},
			},
			validator: validatorUniqueOptional{},
			collector: collectorUnique{},
		},
	)
}

func resolveTyped[T any](resolver *Resolver, req Request) (val T, found bool, err error) {
	resolved, found, err := resolver.resolve(req)
	if err != nil {
		return val, false, fmt.Errorf("failed to resolve request %s:\n\t%w", req, err)
	}
	if !found {
		return val, false, nil
	}
	val, err = unReflect[T](resolved)
	return val, err == nil, err
}

func (r *Resolver) resolve(req Request) (val reflect.Value, found bool, err error) {
	start := time.Now()
	defer func() {
		r.logger.Trace().
			Stringer("request", req).
			Bool("found", found).
			Dur("elapsed", time.Since(start)).
			Msg("resolved")
	}()

	if req.tracker == nil {
		req.tracker = NewTracker()
	}

	results := r.find(req.query)
	err = req.validator.validate(req.query, results)
	if err != nil {
		return reflect.Value{}, false, fmt.Errorf("failed to validate results for request %v:\n\t%w", req, err)
	}
	return req.collector.collect(req.unitaryTyp, r, results, req.tracker)
}

type prioritized interface {
	Priority() int
}

func compareByPriority[P prioritized](p1, p2 P) int {
	return cmp.Compare(p1.Priority(), p2.Priority())
}

func unReflect[T any](v reflect.Value) (res T, err error) {
	if !v.IsValid() {
		return res, nil
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return res, nil
	}
	res, ok := v.Interface().(T)
	if !ok {
		return res, fmt.Errorf("value %v is not of type %T", v, res)
	}
	return res, nil
}

// Describe dumps the registered providers, decorators and the components built so far.
func (r *Resolver) Describe() string {
	var b strings.Builder
	b.WriteString("* Providers:\n")
	for _, p := range r.providers.items() {
		b.WriteString(fmt.Sprintf("\t- %s (priority=%d)\n", describe(p), p.Priority()))
		if desc := p.Description(); desc != "" {
			b.WriteString(fmt.Sprintf("\t\tdescription: %s\n", desc))
		}
		b.WriteString("\t\tprovides:\n")
		for _, n := range p.ListProvidableNames() {
			b.WriteString(fmt.Sprintf("\t\t\t- %s\n", n))
		}
		b.WriteString("\t\tdependencies:\n")
		for _, d := range p.Dependencies() {
			b.WriteString(fmt.Sprintf("\t\t\t- %s\n", d))
		}
	}
	b.WriteString("* Decorators:\n")
	for _, d := range r.decorators.items() {
		b.WriteString(fmt.Sprintf("\t- %s (priority=%d)\n", describe(d), d.Priority()))
		if desc := d.Description(); desc != "" {
			b.WriteString(fmt.Sprintf("\t\tdescription: %s\n", desc))
		}
	}
	b.WriteString("* Stored components:\n")
	for _, n := range r.store.ListNames() {
		comp, _ := r.store.Get(n)
		b.WriteString(fmt.Sprintf("\t- %s: %v\n", n, comp))
	}
	return b.String()
}

func describe(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", v)
}
