package universe

import (
	"sort"

	"github.com/pkg/errors"
)

//Factory creates the universe engine
type Factory func(o *Options) (Universe, error)

const DefEngine = "simple"

var ErrUnknownEngine = errors.New("unknown engine")

//Engines is the registry of the step implementations, all of them produce the same generations
var Engines = map[string]Factory{
	"base": func(o *Options) (Universe, error) {
		u, err := NewBaseUniverse(o)
		if err != nil {
			return nil, err
		}
		return u, nil
	},
	"simple":        NewSimpleUniverse,
	"smallBuff":     NewSmallBuffUniverse,
	"multithreaded": NewMultithreadedUniverse,
}

//New creates the universe with the named engine, an empty name selects DefEngine
func New(engine string, o *Options) (Universe, error) {
	if engine == "" {
		engine = DefEngine
	}
	f, ok := Engines[engine]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", engine)
	}
	return f(o)
}

//EngineNames returns the registered engine names sorted
func EngineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(Engines))
	for k := range Engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}
