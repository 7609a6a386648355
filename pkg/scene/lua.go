package scene

import (
	"fmt"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/taigrr/cornell/pkg/math3d"
)

// Scene scripts are plain Lua with a few globals:
//
//	cornell()                                  -- add the Cornell box
//	triangle(x0,y0,z0, x1,y1,z1, x2,y2,z2 [, r,g,b])
//	quad(x0,y0,z0, ..., x3,y3,z3 [, r,g,b])    -- two triangles 0-1-2, 0-2-3
//	model(path, minx,miny,minz, maxx,maxy,maxz [, r,g,b])
//	light(x,y,z [, r,g,b [, ir,ig,ib]])        -- position, power, indirect
//	orient(x,y,z, "toward"|"away")
//
// orient fixes the normals of everything added since the previous orient or
// cornell call so they face toward (or away from) the point. Only the base,
// table, string and math libraries are available.

// LoadLua runs a scene script from a file. model paths are resolved
// relative to the script.
func LoadLua(path string) (*Scene, error) {
	b := newLuaBuilder(filepath.Dir(path))
	L, err := b.state()
	if err != nil {
		return nil, err
	}
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("lua scene %s: %w", path, err)
	}
	return b.scene, nil
}

// LoadLuaString runs a scene script held in memory.
func LoadLuaString(src string) (*Scene, error) {
	b := newLuaBuilder(".")
	L, err := b.state()
	if err != nil {
		return nil, err
	}
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("lua scene: %w", err)
	}
	return b.scene, nil
}

type luaBuilder struct {
	scene   *Scene
	baseDir string
	mark    int // first triangle not yet covered by orient
}

func newLuaBuilder(baseDir string) *luaBuilder {
	return &luaBuilder{scene: New(), baseDir: baseDir}
}

func (b *luaBuilder) state() (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("lua open %s: %w", lib.name, err)
		}
	}

	L.SetGlobal("cornell", L.NewFunction(b.cornell))
	L.SetGlobal("triangle", L.NewFunction(b.triangle))
	L.SetGlobal("quad", L.NewFunction(b.quad))
	L.SetGlobal("model", L.NewFunction(b.model))
	L.SetGlobal("light", L.NewFunction(b.light))
	L.SetGlobal("orient", L.NewFunction(b.orient))
	return L, nil
}

// vec reads three numbers starting at stack index i.
func vec(L *lua.LState, i int) math3d.Vec3 {
	return math3d.V3(
		float64(L.CheckNumber(i)),
		float64(L.CheckNumber(i+1)),
		float64(L.CheckNumber(i+2)),
	)
}

// optVec reads three numbers at i when present, else returns def.
func optVec(L *lua.LState, i int, def math3d.Vec3) math3d.Vec3 {
	if L.GetTop() < i {
		return def
	}
	return vec(L, i)
}

func (b *luaBuilder) cornell(L *lua.LState) int {
	b.scene.Add(CornellTriangles()...)
	b.mark = len(b.scene.Triangles)
	return 0
}

func (b *luaBuilder) triangle(L *lua.LState) int {
	t := NewTriangle(vec(L, 1), vec(L, 4), vec(L, 7), optVec(L, 10, White))
	b.scene.Add(t)
	return 0
}

func (b *luaBuilder) quad(L *lua.LState) int {
	v0, v1, v2, v3 := vec(L, 1), vec(L, 4), vec(L, 7), vec(L, 10)
	color := optVec(L, 13, White)
	b.scene.Add(NewTriangle(v0, v1, v2, color), NewTriangle(v0, v2, v3, color))
	return 0
}

func (b *luaBuilder) model(L *lua.LState) int {
	path := L.CheckString(1)
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.baseDir, path)
	}
	fit := NewBounds(vec(L, 2), vec(L, 5))
	if fit.Empty() {
		L.ArgError(2, "model bounds have min > max")
		return 0
	}

	tris, err := LoadModel(path, fit, optVec(L, 8, White))
	if err != nil {
		L.RaiseError("model %s: %v", path, err)
		return 0
	}
	b.scene.Add(tris...)
	return 0
}

func (b *luaBuilder) light(L *lua.LState) int {
	l := b.scene.Light
	l.Position = vec(L, 1)
	l.Power = optVec(L, 4, l.Power)
	l.Indirect = optVec(L, 7, l.Indirect)
	b.scene.Light = l
	return 0
}

func (b *luaBuilder) orient(L *lua.LState) int {
	ref := vec(L, 1)
	var toward bool
	switch mode := L.OptString(4, "toward"); mode {
	case "toward":
		toward = true
	case "away":
		toward = false
	default:
		L.ArgError(4, fmt.Sprintf("want \"toward\" or \"away\", got %q", mode))
		return 0
	}
	b.scene.OrientNormals(b.mark, ref, toward)
	b.mark = len(b.scene.Triangles)
	return 0
}
