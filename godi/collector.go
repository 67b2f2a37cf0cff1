package godi

import (
	"fmt"
	"reflect"
)

type (
	collector interface {
		collect(unitaryTyp reflect.Type, r *Resolver, results []*queryResult, tracker *Tracker) (val reflect.Value, found bool, err error)

		fmt.Stringer
	}

	collectorUnique struct{}

	collectorMultipleAsSlice struct{}

	collectorMultipleAsMap struct{}
)

func (c collectorUnique) collect(_ reflect.Type, r *Resolver, results []*queryResult, tracker *Tracker) (val reflect.Value, found bool, err error) {
	if len(results) == 0 {
		return reflect.Value{}, false, nil
	}

	val, err = r.provideUsing(results[0].provider, results[0].name, tracker)
	if err != nil {
		return reflect.Value{}, false, err
	}
	return val, true, nil
}

func (c collectorUnique) String() string {
	return "<unique>"
}

func (c collectorMultipleAsSlice) collect(unitaryTyp reflect.Type, r *Resolver, results []*queryResult, tracker *Tracker) (val reflect.Value, found bool, err error) {
	length := len(results)
	slice := reflect.MakeSlice(reflect.SliceOf(unitaryTyp), length, length)
	for i, result := range results {
		instance, err := r.provideUsing(result.provider, result.name, NewTrackerFrom(tracker))
		if err != nil {
			return reflect.Value{}, false, fmt.Errorf("failed to instantiate component %s:\n\t%w", result.name, err)
		}
		slice.Index(i).Set(instance)
	}

	return slice, true, nil
}

func (c collectorMultipleAsSlice) String() string {
	return "<multiple as slice>"
}

func (c collectorMultipleAsMap) collect(unitaryTyp reflect.Type, r *Resolver, results []*queryResult, tracker *Tracker) (val reflect.Value, found bool, err error) {
	mapValue := reflect.MakeMapWithSize(reflect.MapOf(StringType, unitaryTyp), len(results))
	for _, result := range results {
		instance, err := r.provideUsing(result.provider, result.name, NewTrackerFrom(tracker))
		if err != nil {
			return reflect.Value{}, false, fmt.Errorf("failed to instantiate component %s:\n\t%w", result.name, err)
		}
		mapValue.SetMapIndex(reflect.ValueOf(result.name.name), instance)
	}

	return mapValue, true, nil
}

func (c collectorMultipleAsMap) String() string {
	return "<multiple as map>"
}
