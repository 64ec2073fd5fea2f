package hostmodel

// Name is an interned host name.
type Name string

// Vector is a point in 3D space.
//
//sk:struct defaults pod
type Vector struct {
	X, Y, Z float64
}

// Opaque is not exported to scripts.
type Opaque struct {
	Handle uintptr
}

// Object is the root of every class.
//
//sk:class
type Object struct{}

// Visibility controls rendering.
//
//sk:enum
type Visibility uint8

const (
	Visible Visibility = iota
	Hidden
	Collapsed
)

// Actor can be placed in a level.
//
//sk:class required_api
//sk:category Gameplay
type Actor struct {
	Object

	// MaxHealth is the health cap.
	MaxHealth float32
	Hidden    bool `sk:"name=bHidden"`
	Location  Vector
	Tags      []Name
	Owner     *Actor
	Spawner   *Actor `sk:"class"`
	Mode      Visibility
	Cache     map[string]int
	DebugName string `sk:"editor_only"`
	Target    *Actor `sk:"weak"`
	Skipped   int    `sk:"-"`
	internal  int
}

// IsHidden reports whether the actor is hidden.
func (a *Actor) IsHidden() bool { return a.Hidden }

// SetActorHidden hides or shows the actor.
func (a *Actor) SetActorHidden(newHidden bool) { a.Hidden = newHidden }

//nolint:revive // host naming
func (a *Actor) K2_GetActorLocation() Vector { return a.Location }

// Bounds has two results and cannot be bound.
func (a *Actor) Bounds() (Vector, Vector) { return a.Location, a.Location }

func (a *Actor) touch() { a.internal++ }

// SpawnActor creates an actor next to owner.
//
//sk:static Actor
func SpawnActor(owner *Actor, count int32) *Actor {
	return &Actor{Owner: owner, MaxHealth: float32(count)}
}

// Pawn is an actor that can be possessed.
//
//sk:class minimal_api
type Pawn struct {
	*Actor

	Speed float64
}
