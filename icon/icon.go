// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/steadyplay/steadyplay/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Lua Icon = iota + 1
	Go
	Fail
	Success
	Progress
	Question
	Mark
	Play
	Pause
	Stall
	Complete
	Quality
	Resume
)

var icons = map[Icon]*iconDef{
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "Lua",
		kaomoji: "(=^･ω･^=)",
		squares: "🟦",
	},
	Go: {
		emoji:   "🐹",
		nerd:    "",
		plain:   "Go",
		kaomoji: "ʕ •ᴥ•ʔ",
		squares: "🟦",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(╯°□°)╯︵ ┻━┻",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Question: {
		emoji:   "🤔",
		nerd:    "",
		plain:   "?",
		kaomoji: "(¯\\_(ツ)_/¯)",
		squares: "🟪",
	},
	Mark: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "✧",
		squares: "🟫",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(｀･ω･´)ゞ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣) zzZZ",
		squares: "🟨",
	},
	Stall: {
		emoji:   "🐢",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・・;)",
		squares: "🟧",
	},
	Complete: {
		emoji:   "🏁",
		nerd:    "",
		plain:   "END",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ*:･ﾟ✧",
		squares: "⬛",
	},
	Quality: {
		emoji:   "📺",
		nerd:    "",
		plain:   "Q",
		kaomoji: "[■_■]",
		squares: "🟦",
	},
	Resume: {
		emoji:   "⏪",
		nerd:    "",
		plain:   "<<",
		kaomoji: "(・∀・)ノ",
		squares: "🟪",
	},
}
