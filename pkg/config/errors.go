package config

import "github.com/go-drift/motion/pkg/errors"

// Load and build errors. They arrive wrapped in an *errors.Error of kind
// errors.KindConfig, with Property set when a single property is at fault.
var (
	ErrUnknownProperty   = errors.New("unknown property")
	ErrBadLiteral        = errors.New("malformed value literal")
	ErrUnknownCurve      = errors.New("unknown timing curve")
	ErrBadBezier         = errors.New("bezier timing needs exactly four numbers")
	ErrUnknownSpring     = errors.New("unknown spring preset")
	ErrUnknownIntegrator = errors.New("unknown spring integrator")
	ErrUnknownAnimation  = errors.New("unknown animation")
	ErrUnknownSequence   = errors.New("unknown sequence")
	ErrUnknownTransition = errors.New("unknown transition")
	ErrUnknownGroup      = errors.New("unknown group")
	ErrNoModule          = errors.New("no go.mod found")
)

func propertyError(op, property string, err error) error {
	return &errors.Error{
		Op:       op,
		Kind:     errors.KindConfig,
		Err:      err,
		Property: property,
	}
}
