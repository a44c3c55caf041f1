package levels

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
)

func TestDefaultLoaderBuiltins(t *testing.T) {
	loader := DefaultLoader()

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() error = %v", err)
	}
	want := []string{"01-meadow", "02-caverns", "03-tower"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ListIDs() = %v, expected %v", ids, want)
	}

	p := core.DefaultParams()
	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	for _, lvl := range all {
		t.Run(lvl.ID, func(t *testing.T) {
			st, err := lvl.Stage("solid", nil, p)
			if err != nil {
				t.Fatalf("Stage() error = %v", err)
			}
			if !lvl.HasSpawn {
				t.Error("built-in levels should place the player explicitly")
			}
			player := core.RectAt(st.PlayerSpawn, p.PlayerW, p.PlayerH)
			if st.Grid.Collides(player) {
				t.Errorf("player spawn %v overlaps a solid cell", st.PlayerSpawn)
			}
			if len(st.EnemySpawns) == 0 {
				t.Error("built-in levels should have enemies")
			}
			for _, pos := range st.EnemySpawns {
				if st.Grid.Collides(core.RectAt(pos, p.EnemyW, p.EnemyH)) {
					t.Errorf("enemy spawn %v overlaps a solid cell", pos)
				}
			}
		})
	}
}

func TestLoadTMX(t *testing.T) {
	lvl, err := NewLoader("testdata").LoadFile("small.tmx")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if lvl.ID != "small" || lvl.Name != "Small Room" || lvl.Format != "tmx" {
		t.Errorf("got id=%q name=%q format=%q", lvl.ID, lvl.Name, lvl.Format)
	}
	if !lvl.HasSpawn || lvl.Spawn != (core.Vec{X: 8, Y: 48}) {
		t.Errorf("Spawn = %v (has=%v), expected (8,48)", lvl.Spawn, lvl.HasSpawn)
	}

	g, err := lvl.Grid("solid", nil)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	wantRows := []string{
		"......",
		"..#...",
		"......",
		"######",
	}
	if got := g.Rows(); !reflect.DeepEqual(got, wantRows) {
		t.Errorf("Rows() = %v, expected %v", got, wantRows)
	}

	p := core.DefaultParams()
	st, err := lvl.Stage("solid", nil, p)
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if want := (core.Vec{X: 8 - p.PlayerW/2, Y: 48 - p.PlayerH}); st.PlayerSpawn != want {
		t.Errorf("PlayerSpawn = %v, expected %v", st.PlayerSpawn, want)
	}
}

func TestLoadTMXMissingLayer(t *testing.T) {
	lvl, err := NewLoader("testdata").LoadFile("nospawn.tmx")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if lvl.ID != "nospawn" {
		t.Errorf("ID = %q, expected the file stem", lvl.ID)
	}

	_, err = lvl.Grid("solid", nil)
	if !errors.Is(err, core.ErrMissingLayer) {
		t.Fatalf("Grid(solid) error = %v, expected ErrMissingLayer", err)
	}
	var le *core.LoadError
	if !errors.As(err, &le) {
		t.Errorf("error should wrap *core.LoadError, got %T", err)
	}

	p := core.DefaultParams()
	st, err := lvl.Stage("ground", nil, p)
	if err != nil {
		t.Fatalf("Stage(ground) error = %v", err)
	}
	if lvl.HasSpawn {
		t.Error("level has no PlayerSpawn group")
	}
	if want := core.FindSpawns(st.Grid, p.PlayerW, p.PlayerH)[0]; st.PlayerSpawn != want {
		t.Errorf("PlayerSpawn = %v, expected first standing spot %v", st.PlayerSpawn, want)
	}
}

func TestSolidIDOverride(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/mixed.yaml": {Data: []byte(`
id: mixed
legend: {"#": 1, "~": 2}
solid_ids: [1]
map: |
  #~
`)},
		"levels/plain.yaml": {Data: []byte(`
legend: {"#": 1, "~": 2}
map: |
  #~
`)},
	}
	loader := NewFSLoader(fsys, "levels")

	mixed, err := loader.LoadByID("mixed")
	if err != nil {
		t.Fatalf("LoadByID() error = %v", err)
	}
	g, err := mixed.Grid("solid", []uint32{1, 2})
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if !g.Solid(0, 0) || g.Solid(1, 0) {
		t.Error("level solid_ids should override the fallback")
	}

	plain, err := loader.LoadByID("plain")
	if err != nil {
		t.Fatalf("LoadByID(plain) error = %v", err)
	}
	g, err = plain.Grid("solid", []uint32{2})
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	if g.Solid(0, 0) || !g.Solid(1, 0) {
		t.Error("fallback ids should apply without level solid_ids")
	}
}

func TestLoaderErrors(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		_, err := DefaultLoader().LoadByID("99-nowhere")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, expected ErrNotFound", err)
		}
	})

	t.Run("broken file fails the catalogue", func(t *testing.T) {
		fsys := fstest.MapFS{
			"good.yaml":  {Data: []byte("id: good\nmap: \"#\"\n")},
			"bad.yaml":   {Data: []byte("id: [")},
			"readme.txt": {Data: []byte("ignored")},
		}
		if _, err := NewFSLoader(fsys, ".").LoadAll(); err == nil {
			t.Error("LoadAll() should fail on a broken level")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		fsys := fstest.MapFS{"level.json": {Data: []byte("{}")}}
		if _, err := NewFSLoader(fsys, ".").LoadFile("level.json"); err == nil {
			t.Error("LoadFile() should reject unknown formats")
		}
	})
}

func TestResolve(t *testing.T) {
	loader := DefaultLoader()

	lvl, err := loader.Resolve("testdata/small.tmx")
	if err != nil {
		t.Fatalf("Resolve(path) error = %v", err)
	}
	if lvl.ID != "small" {
		t.Errorf("ID = %q, expected small", lvl.ID)
	}

	lvl, err = loader.Resolve("02-caverns")
	if err != nil {
		t.Fatalf("Resolve(id) error = %v", err)
	}
	if lvl.Name != "Caverns" {
		t.Errorf("Name = %q, expected Caverns", lvl.Name)
	}
}

func TestLoadCatalogue(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"override.yaml": "id: 01-meadow\nname: My Meadow\nmap: |\n  ....\n  ####\n",
		"extra.yml":     "name: Extra\nmap: |\n  ..\n  ##\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	all, err := LoadCatalogue(dir)
	if err != nil {
		t.Fatalf("LoadCatalogue() error = %v", err)
	}

	var ids []string
	names := make(map[string]string)
	for _, lvl := range all {
		ids = append(ids, lvl.ID)
		names[lvl.ID] = lvl.Name
	}
	want := []string{"01-meadow", "02-caverns", "03-tower", "extra"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, expected %v", ids, want)
	}
	if names["01-meadow"] != "My Meadow" {
		t.Errorf("a level on disk should replace the built-in, got %q", names["01-meadow"])
	}

	builtin, err := LoadCatalogue("")
	if err != nil || len(builtin) != 3 {
		t.Errorf("LoadCatalogue(\"\") = %d levels, %v", len(builtin), err)
	}
}
