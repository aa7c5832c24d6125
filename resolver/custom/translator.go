package custom

import (
	"fmt"

	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/source"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

func getBool(table *lua.LTable, key string) mo.Option[bool] {
	val := table.RawGetString(key)
	if val.Type() == lua.LTBool {
		return mo.Some(lua.LVAsBool(val))
	}
	return mo.None[bool]()
}

func levelFromTable(table *lua.LTable, index int) (source.Level, error) {
	file := getString(table, "file")
	if file == "" {
		return source.Level{}, fmt.Errorf("level %d must have a file", index)
	}

	level := source.Level{
		File:       file,
		Label:      getString(table, "label"),
		Type:       getString(table, "type"),
		Default:    getBool(table, "default").OrElse(false),
		Preload:    getString(table, "preload"),
		AndroidHLS: getBool(table, "androidhls"),
	}

	if level.Type == "" {
		level.Type = source.TypeOf(file)
	}

	if headers, ok := table.RawGetString("headers").(*lua.LTable); ok {
		level.Headers = make(map[string]string)
		headers.ForEach(func(k, v lua.LValue) {
			level.Headers[k.String()] = v.String()
		})
	}

	return level, nil
}
