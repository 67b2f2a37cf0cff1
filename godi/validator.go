package godi

import (
	"fmt"
)

type (
	validator interface {
		validate(q query, results []*queryResult) error

		fmt.Stringer
	}

	validatorUniqueMandatory struct{}

	validatorUniqueOptional struct{}

	validatorMultiple struct{}
)

func (c validatorUniqueMandatory) validate(q query, results []*queryResult) error {
	if len(results) != 1 {
		return &ResolutionError{Query: q.String(), Found: len(results)}
	}

	return nil
}

func (c validatorUniqueMandatory) String() string {
	return "<unique mandatory>"
}

func (c validatorUniqueOptional) validate(q query, results []*queryResult) error {
	if len(results) > 1 {
		return &ResolutionError{Query: q.String(), Found: len(results)}
	}

	return nil
}

func (c validatorUniqueOptional) String() string {
	return "<unique optional>"
}

func (c validatorMultiple) validate(query, []*queryResult) error {
	return nil
}

func (c validatorMultiple) String() string {
	return "<multiple>"
}
