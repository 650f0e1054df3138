package block

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies a block type. The zero value is Air.
type Kind uint8

const (
	Air Kind = iota
	Stone
	Dirt
	Grass
	Sand
	Water
	Wood
	Leaves
	Bedrock
)

// Kinds lists every block kind in declaration order.
var Kinds = [...]Kind{Air, Stone, Dirt, Grass, Sand, Water, Wood, Leaves, Bedrock}

type properties struct {
	name  string
	solid bool
	color mgl32.Vec3
}

var catalog = [...]properties{
	Air:     {name: "air", color: mgl32.Vec3{0, 0, 0}},
	Stone:   {name: "stone", solid: true, color: mgl32.Vec3{0.5, 0.5, 0.5}},
	Dirt:    {name: "dirt", solid: true, color: mgl32.Vec3{0.6, 0.4, 0.2}},
	Grass:   {name: "grass", solid: true, color: mgl32.Vec3{0.2, 0.8, 0.2}},
	Sand:    {name: "sand", solid: true, color: mgl32.Vec3{0.9, 0.8, 0.6}},
	Water:   {name: "water", color: mgl32.Vec3{0.2, 0.4, 0.8}},
	Wood:    {name: "wood", solid: true, color: mgl32.Vec3{0.6, 0.3, 0.1}},
	Leaves:  {name: "leaves", solid: true, color: mgl32.Vec3{0.1, 0.6, 0.1}},
	Bedrock: {name: "bedrock", solid: true, color: mgl32.Vec3{0.1, 0.1, 0.1}},
}

// IsSolid reports whether entities collide with the block. Air and Water are
// the only non-solid kinds.
func (k Kind) IsSolid() bool {
	if int(k) >= len(catalog) {
		return false
	}
	return catalog[k].solid
}

// Color returns the display colour as an RGB triple in [0, 1].
func (k Kind) Color() mgl32.Vec3 {
	if int(k) >= len(catalog) {
		return mgl32.Vec3{}
	}
	return catalog[k].color
}

func (k Kind) String() string {
	if int(k) >= len(catalog) {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return catalog[k].name
}

// IsSolid is the function form of Kind.IsSolid.
func IsSolid(k Kind) bool { return k.IsSolid() }

// Color is the function form of Kind.Color.
func Color(k Kind) mgl32.Vec3 { return k.Color() }

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for i, p := range catalog {
		if p.name == name {
			return Kind(i), nil
		}
	}
	return Air, fmt.Errorf("unknown block kind %q", name)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(catalog) {
		return nil, fmt.Errorf("marshal block kind: unknown kind %d", uint8(k))
	}
	return []byte(catalog[k].name), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Palette returns the display colour of every kind keyed by name.
func Palette() map[string]mgl32.Vec3 {
	palette := make(map[string]mgl32.Vec3, len(catalog))
	for _, p := range catalog {
		palette[p.name] = p.color
	}
	return palette
}
