package godi

import (
	"fmt"
	"reflect"
)

func (r *Resolver) provideUsing(p Provider, name Name, tracker *Tracker) (reflect.Value, error) {
	if storedComp, found := r.store.Get(name); found {
		return storedComp, nil
	}

	err := tracker.Push(name)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("dependency cycle detected when trying to provide component %s using provider %s:\n\t%w", name, describe(p), err)
	}
	defer tracker.Pop()

	unlock := r.locks.lock(name)
	defer unlock()

	// built while waiting for the lock
	if storedComp, found := r.store.Get(name); found {
		return storedComp, nil
	}

	dependencies, err := r.resolveDependencies(p.Dependencies(), tracker)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to resolve dependencies for provider %s to provide component %s:\n\t%w", describe(p), name, err)
	}

	comp, err := p.Provide(name, dependencies)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to provide component %s using provider %s:\n\t%w", name, describe(p), err)
	}

	comp, err = r.decorate(name, comp, tracker)
	if err != nil {
		return reflect.Value{}, err
	}

	// store the component in the store for future use
	r.store.Put(name, comp)

	return comp, nil
}

func (r *Resolver) decorate(name Name, comp reflect.Value, tracker *Tracker) (reflect.Value, error) {
	for _, decorator := range r.decorators.items() {
		if decorator.ForName() != name {
			continue
		}
		dependencies, err := r.resolveDependencies(decorator.Dependencies(), tracker)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("failed to resolve dependencies for decorator %s:\n\t%w", describe(decorator), err)
		}
		comp, err = decorator.Decorate(comp, dependencies)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("failed to apply decorator %s to component %s:\n\t%w", describe(decorator), name, err)
		}
		r.logger.Debug().Stringer("component", name).Msgf("applied decorator %s", describe(decorator))
	}
	return comp, nil
}

func (r *Resolver) resolveDependencies(requests []Request, tracker *Tracker) ([]reflect.Value, error) {
	dependencies := make([]reflect.Value, len(requests))
	for idx, req := range requests {
		req.tracker = NewTrackerFrom(tracker)
		val, found, err := r.resolve(req)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dependency %v:\n\t%w", req, err)
		}
		if !found {
			// optional dependency, inject the zero value
			val = reflect.Zero(req.unitaryTyp)
		}
		dependencies[idx] = val
	}

	return dependencies, nil
}
