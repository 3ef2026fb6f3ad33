// Package cli holds what the solana-vamp subcommands share: argument
// resolution, keypair loading, and transaction submission.
package cli

import (
	"fmt"
	"strconv"

	"github.com/Overclock-Validator/solana-vamp/pkg/vamp"
	"github.com/spf13/pflag"
)

// OnceValue is a string flag that may be given at most once.
type OnceValue struct {
	value string
	set   bool
}

var _ pflag.Value = (*OnceValue)(nil)

func (v *OnceValue) String() string { return v.value }

func (v *OnceValue) Type() string { return "string" }

func (v *OnceValue) Set(s string) error {
	if v.set {
		return fmt.Errorf("%w: specified more than once", vamp.ErrArgument)
	}
	v.value, v.set = s, true
	return nil
}

func (v *OnceValue) IsSet() bool { return v.set }

// OnceString registers a string flag that rejects repeated use.
func OnceString(flags *pflag.FlagSet, name, shorthand, usage string) *OnceValue {
	v := new(OnceValue)
	flags.VarP(v, name, shorthand, usage)
	return v
}

// Arg is a command argument that can be given either positionally or as a
// --flag, but not both.
type Arg struct {
	Flag     string
	Name     string
	Required bool

	flag     *OnceValue
	value    string
	resolved bool
}

func (a *Arg) Value() string { return a.value }

func (a *Arg) IsSet() bool { return a.resolved }

// Uint8 parses the argument as a u8. Absent optional arguments yield nil.
func (a *Arg) Uint8() (*uint8, error) {
	if !a.resolved {
		return nil, nil
	}
	n, err := strconv.ParseUint(a.value, 10, 8)
	if err != nil {
		return nil, a.invalid()
	}
	v := uint8(n)
	return &v, nil
}

func (a *Arg) Uint64() (uint64, error) {
	n, err := strconv.ParseUint(a.value, 10, 64)
	if err != nil {
		return 0, a.invalid()
	}
	return n, nil
}

func (a *Arg) Float64() (float64, error) {
	f, err := strconv.ParseFloat(a.value, 64)
	if err != nil {
		return 0, a.invalid()
	}
	return f, nil
}

func (a *Arg) invalid() error {
	return fmt.Errorf("%w: invalid value for %s: %q", vamp.ErrArgument, a.Name, a.value)
}

// Params is the ordered argument list of one command. Positional tokens
// are matched to arguments by index.
type Params struct {
	Command string
	args    []*Arg
}

func (p *Params) add(flags *pflag.FlagSet, flag, name, usage string, required bool) *Arg {
	a := &Arg{Flag: flag, Name: name, Required: required}
	a.flag = OnceString(flags, flag, "", usage)
	p.args = append(p.args, a)
	return a
}

func (p *Params) Required(flags *pflag.FlagSet, flag, name, usage string) *Arg {
	return p.add(flags, flag, name, usage, true)
}

func (p *Params) Optional(flags *pflag.FlagSet, flag, name, usage string) *Arg {
	return p.add(flags, flag, name, usage, false)
}

// Resolve assigns positional tokens and flag values to the arguments.
func (p *Params) Resolve(positional []string) error {
	for i, a := range p.args {
		a.value, a.resolved = "", false
		hasPositional := i < len(positional)
		switch {
		case hasPositional && a.flag.IsSet():
			return fmt.Errorf("%w: %s command requires exactly one %s", vamp.ErrArgument, p.Command, a.Name)
		case hasPositional:
			a.value, a.resolved = positional[i], true
		case a.flag.IsSet():
			a.value, a.resolved = a.flag.String(), true
		case a.Required:
			return fmt.Errorf("%w: %s command requires exactly one %s", vamp.ErrArgument, p.Command, a.Name)
		}
	}
	if len(positional) > len(p.args) {
		return fmt.Errorf("%w: unexpected argument: %s", vamp.ErrArgument, positional[len(p.args)])
	}
	return nil
}

type onceBool struct{ OnceValue }

func (v *onceBool) Type() string { return "bool" }

// OnceBool registers a switch that rejects repeated use.
func OnceBool(flags *pflag.FlagSet, name, usage string) *OnceValue {
	v := new(onceBool)
	flags.VarPF(v, name, "", usage).NoOptDefVal = "true"
	return &v.OnceValue
}
