// Package script compiles and fetches Lua resolver scripts.
package script

import (
	"bytes"
	"sync"

	"github.com/steadyplay/steadyplay/filesystem"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

type compiled struct {
	sum   [32]byte
	proto *lua.FunctionProto
}

var protos sync.Map

// Load runs the script at path in L. Compiled bytecode is reused while the
// file content is unchanged.
func Load(L *lua.LState, path string) error {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return err
	}

	sum := checksum(content)
	if cached, ok := protos.Load(path); ok && cached.(compiled).sum == sum {
		L.Push(L.NewFunctionFromProto(cached.(compiled).proto))
		return L.PCall(0, lua.MultRet, nil)
	}

	chunk, err := parse.Parse(bytes.NewReader(content), path)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return err
	}

	protos.Store(path, compiled{sum: sum, proto: proto})

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

// Forget drops the compiled bytecode for path.
func Forget(path string) {
	protos.Delete(path)
}
