// Package platform describes the reporting quirks of the environment a media
// element runs in.
package platform

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/constant"
)

// Profile is a set of platform traits the provider compensates for.
type Profile struct {
	Name string

	Mobile        bool
	Safari        bool
	IOS           bool
	Android       bool
	LegacyAndroid bool
	MSIE          bool
	Trident       bool
}

// ForceReload reports whether replaying a source requires reloading it.
func (p Profile) ForceReload() bool {
	return p.Mobile || p.Safari
}

// AutoplayRestricted reports whether playback needs a user gesture, in which
// case a load must not imply imminent playback.
func (p Profile) AutoplayRestricted() bool {
	return p.Mobile
}

// Touch reports whether native controls are touch driven.
func (p Profile) Touch() bool {
	return p.IOS
}

// ReloadOnStop reports whether clearing the source should be followed by a load.
func (p Profile) ReloadOnStop() bool {
	return !p.MSIE
}

// PauseOnStop reports whether the element keeps playing after its source is
// cleared unless paused explicitly.
func (p Profile) PauseOnStop() bool {
	return p.Trident
}

// KeepVisible reports whether hiding the element would pause it.
func (p Profile) KeepVisible() bool {
	return p.Android
}

// MisreportsStall reports whether a stream of levelType never advances its
// reported position on this platform, which makes polled stall detection
// useless. Android plays HLS natively unless the level opts out, and legacy
// Android never does.
func (p Profile) MisreportsStall(levelType string, androidHLS mo.Option[bool]) bool {
	if levelType != "hls" || !p.Android {
		return false
	}
	if !androidHLS.OrElse(true) {
		return false
	}
	return !p.LegacyAndroid
}

var presets = map[string]Profile{
	"desktop":        {},
	"mobile":         {Mobile: true},
	"ios":            {Mobile: true, IOS: true, Safari: true},
	"android":        {Mobile: true, Android: true},
	"legacy-android": {Mobile: true, Android: true, LegacyAndroid: true},
	"safari":         {Safari: true},
	"msie":           {MSIE: true, Trident: true},
}

// Names returns every preset name, sorted.
func Names() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}

// Lookup returns the preset with the given name.
func Lookup(name string) (Profile, error) {
	p, ok := presets[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown platform profile %q, available: %v", name, Names())
	}
	p.Name = name
	return p, nil
}

// Detect guesses a preset from the operating system the binary runs on.
func Detect() Profile {
	var name string
	switch runtime.GOOS {
	case constant.Android:
		name = "android"
	case constant.IOS:
		name = "ios"
	default:
		name = "desktop"
	}
	return lo.Must(Lookup(name))
}
