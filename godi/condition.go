package godi

import "github.com/a-peyrard/hello-godi/option"

type (
	condition struct {
		namedStringComponent string
		operator             operator
		value                string
	}

	operator = func(string, string) bool

	ConditionNameBuilder struct {
		namedStringComponent string
	}
)

//goland:noinspection GoVarAndConstTypeMayBeOmitted
var (
	equals operator = func(a, b string) bool {
		return a == b
	}

	notEquals operator = func(a, b string) bool {
		return a != b
	}
)

// When starts a registration condition on the string component registered under the given name.
// A missing component makes the condition fail.
func When(namedStringComponent string) ConditionNameBuilder {
	return ConditionNameBuilder{
		namedStringComponent: namedStringComponent,
	}
}

func (cn ConditionNameBuilder) Equals(value string) option.Option[RegistrableOptions] {
	return cn.with(equals, value)
}

func (cn ConditionNameBuilder) NotEquals(value string) option.Option[RegistrableOptions] {
	return cn.with(notEquals, value)
}

func (cn ConditionNameBuilder) with(op operator, value string) option.Option[RegistrableOptions] {
	return func(opts *RegistrableOptions) {
		opts.conditions = append(
			opts.conditions,
			condition{
				namedStringComponent: cn.namedStringComponent,
				operator:             op,
				value:                value,
			},
		)
	}
}
