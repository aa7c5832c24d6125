// Package hls resolves HLS master playlists into quality levels.
package hls

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/network"
	"github.com/steadyplay/steadyplay/source"
)

// ID of the resolver.
const ID = "hls"

// Fetcher reads a playlist from a URL.
type Fetcher func(ctx context.Context, url string, headers map[string]string) ([]byte, error)

type resolver struct {
	fetch   Fetcher
	headers map[string]string
}

// New returns an HLS resolver fetching remote playlists over the network.
func New() source.Resolver {
	return NewWithFetcher(network.Get, nil)
}

// NewWithFetcher returns an HLS resolver using fetch for remote playlists.
// headers are sent with every request and attached to each level.
func NewWithFetcher(fetch Fetcher, headers map[string]string) source.Resolver {
	return &resolver{fetch: fetch, headers: headers}
}

func (*resolver) Name() string { return "HLS" }
func (*resolver) ID() string   { return ID }

func (r *resolver) Resolve(ctx context.Context, target string) (*source.Item, error) {
	data, err := r.read(ctx, target)
	if err != nil {
		return nil, err
	}

	playlist, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", source.ErrInvalidItem, target, err)
	}

	item := &source.Item{
		Title:   titleOf(target),
		Sources: r.levels(target, playlist),
	}
	if playlist.StartOffset > 0 {
		item.StartTime = mo.Some(playlist.StartOffset)
	}

	return item, item.Validate()
}

func (r *resolver) read(ctx context.Context, target string) ([]byte, error) {
	if remote(target) {
		return r.fetch(ctx, target, r.headers)
	}
	return filesystem.API().ReadFile(target)
}

// levels lists variants from the highest bandwidth down; the highest is the
// default. A media playlist is a single level.
func (r *resolver) levels(target string, playlist *Playlist) []source.Level {
	if !playlist.Master() {
		return []source.Level{{File: target, Type: ID, Default: true, Headers: r.headers}}
	}

	variants := lo.UniqBy(playlist.Variants, func(v Variant) string { return v.URI })
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Bandwidth > variants[j].Bandwidth
	})

	labels := make(map[string]int)
	return lo.Map(variants, func(v Variant, i int) source.Level {
		label := labelOf(v)
		if n := labels[label]; n > 0 {
			label = fmt.Sprintf("%s (%d)", label, n+1)
		}
		labels[labelOf(v)]++

		return source.Level{
			File:    resolve(target, v.URI),
			Label:   label,
			Type:    ID,
			Default: i == 0,
			Headers: r.headers,
		}
	})
}

func labelOf(v Variant) string {
	switch {
	case v.Name != "":
		return v.Name
	case v.Height > 0:
		return fmt.Sprintf("%dp", v.Height)
	case v.Bandwidth > 0:
		return fmt.Sprintf("%d kbps", v.Bandwidth/1000)
	default:
		return path.Base(v.URI)
	}
}

func remote(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// resolve makes a variant URI absolute against the playlist location.
func resolve(base, ref string) string {
	if remote(ref) {
		return ref
	}

	if remote(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}

	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}

func titleOf(target string) string {
	p := target
	if u, err := url.Parse(target); err == nil && u.Path != "" {
		p = u.Path
	}
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}
