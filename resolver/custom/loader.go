// Package custom runs user Lua scripts as resolvers.
package custom

import (
	"fmt"

	libs "github.com/metafates/mangal-lua-libs"
	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/internal/script"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/util"
	lua "github.com/yuin/gopher-lua"
)

// IDfromName returns the resolver ID for a script basename.
func IDfromName(name string) string {
	return name + " custom"
}

// LoadResolver runs the script at path and checks it defines the resolve function.
func LoadResolver(path string) (source.Resolver, error) {
	state := lua.NewState()
	libs.Preload(state)
	registerTLSClient(state)

	if err := script.Load(state, path); err != nil {
		state.Close()
		return nil, err
	}

	name := util.FileStem(path)

	if state.GetGlobal(constant.ResolveLevelsFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.ResolveLevelsFn, name)
	}

	return newLuaResolver(name, state), nil
}
