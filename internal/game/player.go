package game

import "github.com/tomz197/fps/internal/object"

// updatePlayer moves the camera according to the held movement keys. A move
// that would end inside an obstacle's radius is dropped entirely; there is no
// sliding along the obstacle and no swept test.
func (s *Simulation) updatePlayer(in Input) {
	heading := object.Heading{
		Forward: in.Forward,
		Back:    in.Back,
		Left:    in.Left,
		Right:   in.Right,
	}
	delta, ok := s.player.MoveDelta(heading, s.cfg.MoveSpeed)
	if !ok {
		return
	}

	next := s.player.Position.Add(delta)
	if object.Blocks(s.obstacles, next) {
		return
	}
	s.player.Position = next
}
