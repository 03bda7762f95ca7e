package session

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/fps/internal/game"
	"github.com/tomz197/fps/internal/object"
)

// Client message types.
const (
	MsgKeys    = "keys" // Held movement keys
	MsgLook    = "look" // Pointer movement
	MsgFire    = "fire" // One trigger pull
	MsgReload  = "reload"
	MsgStart   = "start"
	MsgRestart = "restart"
	MsgQuit    = "quit"
)

// Server message types.
const (
	MsgHello = "hello"
	MsgFrame = "frame"
)

// ClientMessage is sent by the browser. Only the fields of its type are used.
type ClientMessage struct {
	Type string `json:"type"`

	Forward bool `json:"forward,omitempty"`
	Back    bool `json:"back,omitempty"`
	Left    bool `json:"left,omitempty"`
	Right   bool `json:"right,omitempty"`

	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
}

// Vec is a position in world space.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func vec(v mgl64.Vec3) Vec {
	return Vec{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Hello is the first message on a new session.
type Hello struct {
	Type      string  `json:"type"`
	Session   string  `json:"session"`
	TickRate  int     `json:"tickRate"`
	MaxHealth int     `json:"maxHealth"`
	MaxAmmo   int     `json:"maxAmmo"`
	Obstacles []Vec   `json:"obstacles"`
	Obstacle  Vec     `json:"obstacleSize"`
	Enemy     Vec     `json:"enemySize"`
	Bullet    float64 `json:"bulletRadius"`
}

// UIState mirrors the game.UI calls made by the simulation.
type UIState struct {
	Health       int  `json:"health"`
	Score        int  `json:"score"`
	Ammo         int  `json:"ammo"`
	Instructions bool `json:"instructions"`
	EndScreen    bool `json:"endScreen"`
	FinalScore   int  `json:"finalScore"`
	BestScore    int  `json:"bestScore"`
	PointerLock  bool `json:"pointerLock"`
}

// PlayerState is the camera pose.
type PlayerState struct {
	Position Vec     `json:"position"`
	Yaw      float64 `json:"yaw"`
	Pitch    float64 `json:"pitch"`
}

// EnemyState is one enemy in a frame.
type EnemyState struct {
	ID       uint64 `json:"id"`
	Position Vec    `json:"position"`
	Health   int    `json:"health"`
}

// BulletState is one bullet in a frame.
type BulletState struct {
	ID       uint64 `json:"id"`
	Position Vec    `json:"position"`
}

// Frame is streamed to the browser every tick.
type Frame struct {
	Type    string        `json:"type"`
	Frame   uint64        `json:"frame"`
	Phase   string        `json:"phase"`
	Player  PlayerState   `json:"player"`
	Enemies []EnemyState  `json:"enemies"`
	Bullets []BulletState `json:"bullets"`
	Kills   int           `json:"kills"`
	UI      UIState       `json:"ui"`
}

func newHello(id string, sim *game.Simulation) Hello {
	cfg := sim.Settings()
	v := sim.View()
	obstacles := make([]Vec, 0, len(v.Obstacles))
	for _, o := range v.Obstacles {
		obstacles = append(obstacles, vec(o.Position))
	}
	return Hello{
		Type:      MsgHello,
		Session:   id,
		TickRate:  cfg.TickRate,
		MaxHealth: cfg.MaxHealth,
		MaxAmmo:   cfg.MaxAmmo,
		Obstacles: obstacles,
		Obstacle:  vec(object.ObstacleSize),
		Enemy:     vec(object.EnemySize),
		Bullet:    object.BulletRadius,
	}
}

// fill rewrites f for view v, reusing its slices.
func (f *Frame) fill(v game.View, ui UIState) {
	f.Type = MsgFrame
	f.Frame = v.Stats.Frames
	f.Phase = v.Phase.String()
	f.Player = PlayerState{Position: vec(v.Player.Position), Yaw: v.Player.Yaw, Pitch: v.Player.Pitch}
	f.Kills = v.Stats.Kills
	f.UI = ui

	f.Enemies = f.Enemies[:0]
	for _, e := range v.Enemies {
		f.Enemies = append(f.Enemies, EnemyState{ID: e.ID, Position: vec(e.Position), Health: e.Health})
	}
	f.Bullets = f.Bullets[:0]
	for _, b := range v.Bullets {
		f.Bullets = append(f.Bullets, BulletState{ID: b.ID, Position: vec(b.Position)})
	}
}
