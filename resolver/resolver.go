// Package resolver manages built-in and custom resolvers.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/steadyplay/steadyplay/filesystem"
	"github.com/steadyplay/steadyplay/resolver/custom"
	"github.com/steadyplay/steadyplay/resolver/direct"
	"github.com/steadyplay/steadyplay/resolver/file"
	"github.com/steadyplay/steadyplay/resolver/hls"
	"github.com/steadyplay/steadyplay/source"
	"github.com/steadyplay/steadyplay/util"
	"github.com/steadyplay/steadyplay/where"
)

// CustomExtension is the file extension of Lua resolver scripts.
const CustomExtension = ".lua"

// Resolver describes a resolver that can be created on demand.
type Resolver struct {
	ID       string
	Name     string
	IsCustom bool
	// UsesTLS tells whether a script uses the fingerprinted HTTP client.
	UsesTLS bool
	Create  func() (source.Resolver, error)
}

func (r *Resolver) String() string {
	return r.Name
}

func builtin(r source.Resolver) *Resolver {
	return &Resolver{
		ID:     r.ID(),
		Name:   r.ID(),
		Create: func() (source.Resolver, error) { return r, nil },
	}
}

// Builtins returns the built-in resolvers.
func Builtins() []*Resolver {
	return []*Resolver{
		builtin(file.New()),
		builtin(hls.New()),
		builtin(direct.New()),
	}
}

// Customs returns the Lua resolvers found in the resolvers directory.
func Customs() []*Resolver {
	resolvers, _ := CustomResolvers()
	return resolvers
}

// All returns built-in resolvers followed by custom ones.
func All() []*Resolver {
	return append(Builtins(), Customs()...)
}

// Get finds a resolver by name.
func Get(name string) (*Resolver, bool) {
	return lo.Find(All(), func(r *Resolver) bool {
		return r.Name == name
	})
}

// Detect picks a built-in resolver from the shape of target.
func Detect(target string) *Resolver {
	var id string
	switch ext := strings.ToLower(filepath.Ext(target)); {
	case ext == ".yaml" || ext == ".yml" || ext == ".json":
		id = file.ID
	case source.TypeOf(target) == hls.ID:
		id = hls.ID
	default:
		id = direct.ID
	}

	r, _ := lo.Find(Builtins(), func(r *Resolver) bool { return r.ID == id })
	return r
}

// CustomResolvers lists the Lua scripts in the resolvers directory.
func CustomResolvers() ([]*Resolver, error) {
	files, err := filesystem.API().ReadDir(where.Resolvers())
	if err != nil {
		return nil, err
	}

	var resolvers []*Resolver
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != CustomExtension {
			continue
		}

		path := filepath.Join(where.Resolvers(), f.Name())
		name := util.FileStem(f.Name())

		resolvers = append(resolvers, &Resolver{
			ID:       custom.IDfromName(name),
			Name:     name,
			IsCustom: true,
			UsesTLS:  usesTLS(path),
			Create: func() (source.Resolver, error) {
				return custom.LoadResolver(path)
			},
		})
	}

	return resolvers, nil
}

func usesTLS(path string) bool {
	content, err := filesystem.API().ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(content), "http_tls.")
}
