package xmlfab

import "github.com/lestrrat-go/option"

type Option = option.Interface

type identHeader struct{}
type identIndent struct{}
type identVersion struct{}

type ConstructOption interface {
	Option
	constructOption()
}

type constructOption struct{ Option }

func (*constructOption) constructOption() {}

type OutputOption interface {
	Option
	outputOption()
}

type outputOption struct{ Option }

func (*outputOption) outputOption() {}

// WithHeader specifies whether the XML declaration line is written
// before the tree
func WithHeader(v bool) OutputOption {
	return &outputOption{option.New(identHeader{}, v)}
}

// WithIndent specifies the string used for one level of indentation.
// The empty string is honored and produces flat output
func WithIndent(v string) OutputOption {
	return &outputOption{option.New(identIndent{}, v)}
}

// WithVersion specifies the XML version carried by the document,
// which ends up in the declaration line
func WithVersion(v string) ConstructOption {
	return &constructOption{option.New(identVersion{}, v)}
}
