package custom

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/steadyplay/steadyplay/constant"
	"github.com/steadyplay/steadyplay/source"
	lua "github.com/yuin/gopher-lua"
)

type luaResolver struct {
	name string

	// an LState is not safe for concurrent use
	mu    sync.Mutex
	state *lua.LState
}

func newLuaResolver(name string, state *lua.LState) *luaResolver {
	return &luaResolver{name: name, state: state}
}

func (r *luaResolver) Name() string {
	return r.name
}

func (r *luaResolver) ID() string {
	return IDfromName(r.name)
}

// Resolve calls the script's resolve function, plus its title function when defined.
func (r *luaResolver) Resolve(ctx context.Context, target string) (*source.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.SetContext(ctx)
	defer r.state.RemoveContext()

	val, err := r.call(constant.ResolveLevelsFn, lua.LTTable, lua.LString(target))
	if err != nil {
		return nil, err
	}

	var (
		levels []source.Level
		errs   []error
	)

	val.(*lua.LTable).ForEach(func(k, v lua.LValue) {
		if k.Type() != lua.LTNumber || v.Type() != lua.LTTable {
			return
		}

		idx, err := strconv.Atoi(k.String())
		if err != nil {
			errs = append(errs, err)
			return
		}

		level, err := levelFromTable(v.(*lua.LTable), idx)
		if err != nil {
			errs = append(errs, err)
			return
		}

		levels = append(levels, level)
	})

	if len(levels) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", source.ErrInvalidItem, errs[0])
	}

	item := &source.Item{Sources: levels, Title: target}
	if r.state.GetGlobal(constant.ResolveTitleFn).Type() == lua.LTFunction {
		title, err := r.call(constant.ResolveTitleFn, lua.LTString, lua.LString(target))
		if err != nil {
			return nil, err
		}
		item.Title = title.String()
	}

	return item, item.Validate()
}

// Close releases the Lua state.
func (r *luaResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Close()
}

func (r *luaResolver) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	luaFn := r.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := r.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)
	if err != nil {
		return nil, err
	}

	retval := r.state.Get(-1)
	r.state.Pop(1)

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
