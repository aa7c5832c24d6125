// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Resolver Function Identifiers - these constants define the global function signatures for Lua resolver scripts.
const (
	ResolveLevelsFn = "ResolveLevels"
	ResolveTitleFn  = "ResolveTitle"
)

// ResolverTemplate is a Go text/template for scaffolding new Lua resolver files.
const ResolverTemplate = `{{ $divider := repeat "-" (plus (max (len .URL) (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @url     {{ .URL }}
-- @author  {{ .Author }}
-- @license MIT
{{ $divider }}


---@alias level { file: string, label: string|nil, type: string|nil, default: boolean|nil, preload: string|nil, androidhls: boolean|nil }


----- IMPORTS -----
--- END IMPORTS ---



----- MAIN -----

--- Resolves a target into its selectable quality levels.
-- @param target string Page or media URL passed on the command line
-- @return level[] Table of levels, best first or flagged with default
function {{ .ResolveLevelsFn }}(target)
	return {}
end


--- Optional. Resolves a human readable title for the target.
-- @param target string Page or media URL passed on the command line
-- @return string
function {{ .ResolveTitleFn }}(target)
	return target
end

--- END MAIN ---




----- HELPERS -----
--- END HELPERS ---

-- ex: ts=4 sw=4 et filetype=lua
`
