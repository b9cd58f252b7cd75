package shader

import (
	"embed"
	"fmt"
)

//go:embed glsl/*.vert glsl/*.frag
var files embed.FS

// Source is a vertex/fragment pair loaded from the embedded glsl directory.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Embedded program names.
const (
	Plane   = "plane"
	UISolid = "ui_solid"
	UIText  = "ui_text"
)

// Load returns the embedded sources for name.
func Load(name string) (Source, error) {
	vert, err := files.ReadFile("glsl/" + name + ".vert")
	if err != nil {
		return Source{}, fmt.Errorf("shader %s: %w", name, err)
	}
	frag, err := files.ReadFile("glsl/" + name + ".frag")
	if err != nil {
		return Source{}, fmt.Errorf("shader %s: %w", name, err)
	}
	return Source{Name: name, Vertex: string(vert), Fragment: string(frag)}, nil
}

