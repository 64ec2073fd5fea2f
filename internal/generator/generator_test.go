package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/seitarof/sk-gen/internal/layout"
	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/model/snapshot"
	"github.com/seitarof/sk-gen/internal/typemap"
)

func testModel() (actor, hit *snapshot.Struct) {
	object := snapshot.NewStruct("Object", model.StructIsClass)
	actor = snapshot.NewStruct("Actor", model.StructIsClass|model.StructRequiredAPI).
		SetSuper(object).
		SetDoc("Base actor.", "")
	vector := snapshot.NewStruct("Vector", model.StructHasDefaults|model.StructPlainOldData)
	hit = snapshot.NewStruct("HitResult", model.StructHasDefaults)

	actor.
		AddProperty(snapshot.NewProperty("MaxHealth", model.KindFloat)).
		AddProperty(snapshot.NewProperty("bHidden", model.KindBool, snapshot.WithDoc("Hidden in game.", "Rendering"))).
		AddProperty(snapshot.NewProperty("Owner", model.KindObject, snapshot.WithClass(actor))).
		AddProperty(snapshot.NewProperty("WeakOwner", model.KindObject, snapshot.WithClass(actor), snapshot.WithFlags(model.PropWeakRef))).
		AddProperty(snapshot.NewProperty("Hits", model.KindArray,
			snapshot.WithElem(snapshot.NewProperty("", model.KindStruct, snapshot.WithStruct(hit)))))

	actor.
		AddFunction(snapshot.NewFunction("K2_GetActorLocation", false,
			snapshot.NewProperty("ReturnValue", model.KindStruct, snapshot.WithStruct(vector)))).
		AddFunction(snapshot.NewFunction("IsHidden", false,
			snapshot.NewProperty("ReturnValue", model.KindBool))).
		AddFunction(snapshot.NewFunction("SetActorHidden", false, nil,
			snapshot.NewProperty("bNewHidden", model.KindBool))).
		AddFunction(snapshot.NewFunction("GetSecret", false,
			snapshot.NewProperty("ReturnValue", model.KindOther))).
		AddFunction(snapshot.NewFunction("SpawnActor", true,
			snapshot.NewProperty("ReturnValue", model.KindObject, snapshot.WithClass(actor)),
			snapshot.NewProperty("ActorClass", model.KindClass, snapshot.WithClass(actor))))
	return actor, hit
}

func newTestGenerator(t *testing.T, root string, w FileWriter, opts ...Option) (Generator, *layout.Resolver) {
	t.Helper()
	r, err := layout.New(root, 4)
	require.NoError(t, err)
	return New(typemap.Default(), r, w, zerolog.Nop(), opts...), r
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestGenerate_WritesScripts(t *testing.T) {
	root := t.TempDir()
	actor, hit := testModel()
	g, _ := newTestGenerator(t, root, NewFileWriter())

	res, err := g.Generate([]model.Struct{actor, hit})
	require.NoError(t, err)

	actorDir := filepath.Join(root, "Object", "Entity", "Actor")
	data := readFile(t, filepath.Join(actorDir, DataFileName))
	assert.True(t, strings.HasPrefix(data, "// Base actor.\n//\n// UE4 name of this class: Actor\n\n"), data)
	assert.Contains(t, data, "//\n// UE4 name of this property: MaxHealth\nReal !@max_health\n")
	assert.Contains(t, data, "// Hidden in game.\n//\n// UE4 name of this property: bHidden\n// Blueprint category: Rendering\nBoolean !@hidden?\n")
	assert.Contains(t, data, "Actor !@owner\n")
	assert.Contains(t, data, "List{HitResult} !@hits\n")
	assert.NotContains(t, data, "weak_owner")

	assert.Equal(t, "//\n// UE4 name of this method: IsHidden\n\n() Boolean\n",
		readFile(t, filepath.Join(actorDir, "is_hidden-Q().sk")))
	assert.Contains(t, readFile(t, filepath.Join(actorDir, "actor_location().sk")), "\n() Vector3\n")
	assert.Contains(t, readFile(t, filepath.Join(actorDir, "actor_hidden_set().sk")), "\n(Boolean new_hidden?)\n")
	assert.Contains(t, readFile(t, filepath.Join(actorDir, "spawn_actor()C.sk")), "\n(EntityClass actor_class) Actor\n")
	assert.NoFileExists(t, filepath.Join(actorDir, "secret().sk"))

	// HitResult has no members, so it gets no data file.
	assert.NoFileExists(t, filepath.Join(root, "Object", "UStruct", "HitResult", DataFileName))

	assert.Equal(t, 5, res.Staged)
	assert.Equal(t, 0, res.Unchanged)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Classes, 2)
	assert.Equal(t, 4, res.Classes[0].Members)
	assert.Len(t, res.Classes[0].Methods, 4)

	var used []string
	for _, s := range res.UsedClasses {
		used = append(used, s.Name())
	}
	assert.ElementsMatch(t, []string{"Object", "Actor", "HitResult"}, used)

	matches, err := filepath.Glob(filepath.Join(actorDir, "*"+TempSuffix))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGenerate_SecondRunIsUnchanged(t *testing.T) {
	root := t.TempDir()
	actor, _ := testModel()

	g, _ := newTestGenerator(t, root, NewFileWriter())
	first, err := g.Generate([]model.Struct{actor})
	require.NoError(t, err)

	dataPath := filepath.Join(root, "Object", "Entity", "Actor", DataFileName)
	before, err := os.Stat(dataPath)
	require.NoError(t, err)

	g, _ = newTestGenerator(t, root, NewFileWriter())
	second, err := g.Generate([]model.Struct{actor})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Staged)
	assert.Equal(t, first.Staged, second.Unchanged)

	after, err := os.Stat(dataPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestGenerate_Manifest(t *testing.T) {
	root := t.TempDir()
	actor, _ := testModel()
	manifestPath := filepath.Join(root, "sk-gen-manifest.yaml")

	g, _ := newTestGenerator(t, root, NewFileWriter(), WithManifest(manifestPath))
	_, err := g.Generate([]model.Struct{actor})
	require.NoError(t, err)

	var m manifest
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, manifestPath)), &m))
	require.Len(t, m.Classes, 1)
	assert.Equal(t, "Actor", m.Classes[0].Name)

	var found bool
	for _, mr := range m.Classes[0].Methods {
		if mr.HostName == "IsHidden" {
			found = true
			assert.Equal(t, "is_hidden?", mr.Name)
			assert.Equal(t, "is_hidden-Q().sk", mr.File)
			assert.NotZero(t, mr.SymbolID)
		}
	}
	assert.True(t, found)
}

func TestGenerate_RejectsEmptyInput(t *testing.T) {
	g, _ := newTestGenerator(t, t.TempDir(), NewFileWriter())
	_, err := g.Generate(nil)
	require.Error(t, err)
}

func TestGenerate_MethodNameCollision(t *testing.T) {
	root := t.TempDir()
	s := snapshot.NewStruct("Widget", model.StructIsClass|model.StructRequiredAPI)
	s.AddFunction(snapshot.NewFunction("GetVisibility", false, nil)).
		AddFunction(snapshot.NewFunction("Visibility", false, nil))

	g, _ := newTestGenerator(t, root, NewFileWriter())
	res, err := g.Generate([]model.Struct{s})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Classes[0].Methods, 1)
	assert.Equal(t, "GetVisibility", res.Classes[0].Methods[0].HostName)
}

type failingWriter struct {
	FileWriter
	failAfter int
	writes    int
	discarded bool
	committed bool
}

func (w *failingWriter) WriteIfChanged(path, content string) (bool, error) {
	w.writes++
	if w.writes > w.failAfter {
		return false, ErrIOFailure
	}
	return true, nil
}

func (w *failingWriter) Commit() error {
	w.committed = true
	return nil
}

func (w *failingWriter) Discard() error {
	w.discarded = true
	return nil
}

func TestGenerate_WriteFailureDiscards(t *testing.T) {
	actor, _ := testModel()
	w := &failingWriter{failAfter: 1}
	g, _ := newTestGenerator(t, t.TempDir(), w)

	_, err := g.Generate([]model.Struct{actor})
	require.True(t, errors.Is(err, ErrIOFailure))
	assert.True(t, w.discarded)
	assert.False(t, w.committed)
}

func TestGenerate_CycleAborts(t *testing.T) {
	a := snapshot.NewStruct("A", model.StructIsClass)
	b := snapshot.NewStruct("B", model.StructIsClass).SetSuper(a)
	a.SetSuper(b)

	w := &failingWriter{failAfter: 100}
	g, _ := newTestGenerator(t, t.TempDir(), w)
	_, err := g.Generate([]model.Struct{a})
	require.ErrorIs(t, err, layout.ErrAncestorCycle)
	assert.True(t, w.discarded)
}
