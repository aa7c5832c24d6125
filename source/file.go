package source

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// LevelFile is the serialized form of a Level, as written in item files.
type LevelFile struct {
	File       string            `json:"file" yaml:"file" jsonschema:"description=Locator of the rendition. A path or URL."`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty" jsonschema:"description=Label shown to users, e.g. 720p."`
	Type       string            `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"description=Container or stream type, e.g. mp4, hls, aac. Guessed from the file extension when empty."`
	Default    bool              `json:"default,omitempty" yaml:"default,omitempty" jsonschema:"description=Pick this level when no preferred label matches."`
	Preload    string            `json:"preload,omitempty" yaml:"preload,omitempty" jsonschema:"enum=none,enum=metadata,enum=auto,description=Preload hint applied when the level is bound."`
	AndroidHLS *bool             `json:"androidhls,omitempty" yaml:"androidhls,omitempty" jsonschema:"description=Set to false to disable native HLS handling on Android."`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" jsonschema:"description=HTTP headers required to fetch the file."`
}

// ItemFile is the serialized form of an Item.
type ItemFile struct {
	Title     string      `json:"title,omitempty" yaml:"title,omitempty" jsonschema:"description=Title of the item."`
	Sources   []LevelFile `json:"sources" yaml:"sources" jsonschema:"minItems=1,description=Quality levels in preference order."`
	StartTime *float64    `json:"starttime,omitempty" yaml:"starttime,omitempty" jsonschema:"minimum=0,description=Position in seconds to start from."`
	Duration  *float64    `json:"duration,omitempty" yaml:"duration,omitempty" jsonschema:"minimum=0,description=Known duration in seconds."`
}

// Item converts the file form to an Item, guessing missing level types.
func (f *ItemFile) Item() *Item {
	return &Item{
		Title: f.Title,
		Sources: lo.Map(f.Sources, func(l LevelFile, _ int) Level {
			level := Level{
				File:       l.File,
				Label:      l.Label,
				Type:       l.Type,
				Default:    l.Default,
				Preload:    l.Preload,
				AndroidHLS: mo.PointerToOption(l.AndroidHLS),
				Headers:    l.Headers,
			}
			if level.Type == "" {
				level.Type = TypeOf(l.File)
			}
			return level
		}),
		StartTime: mo.PointerToOption(f.StartTime),
		Duration:  mo.PointerToOption(f.Duration),
	}
}

// FileOf converts an Item back to its file form.
func FileOf(item *Item) *ItemFile {
	return &ItemFile{
		Title: item.Title,
		Sources: lo.Map(item.Sources, func(l Level, _ int) LevelFile {
			return LevelFile{
				File:       l.File,
				Label:      l.Label,
				Type:       l.Type,
				Default:    l.Default,
				Preload:    l.Preload,
				AndroidHLS: l.AndroidHLS.ToPointer(),
				Headers:    l.Headers,
			}
		}),
		StartTime: item.StartTime.ToPointer(),
		Duration:  item.Duration.ToPointer(),
	}
}
