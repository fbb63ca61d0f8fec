package sim

import (
	"math"

	"github.com/rabbitwine/rabbitwine-mp/shared/gamemath"
	"github.com/rabbitwine/rabbitwine-mp/shared/terrain"
)

// stepPortal checks whether the player's cell triggers a level transition and,
// if so, performs it: snapshot the kinematic state, place the player at the
// computed exit in the destination level, restore the snapshot onto the new
// position. A trigger without a registered destination is a no-op.
func (s *Sim) stepPortal() {
	p := &s.player
	if p.PortalCooldown > 0 {
		return
	}

	gx, gz, ok := s.store.CellAt(p.X, p.Z)
	if !ok {
		return
	}

	triggered := s.store.TileAt(gx, gz) == terrain.TileLevelChange
	if !triggered {
		for _, sp := range s.store.Spans(gx, gz) {
			if sp.Kind == terrain.KindPortal &&
				p.Y >= sp.Base-PortalClearance && p.Y <= sp.Top() {
				triggered = true
				break
			}
		}
	}
	if !triggered {
		return
	}

	dest, ok := s.store.PortalDest(gx, gz)
	if !ok {
		return
	}
	next, ok := s.source.Level(dest)
	if !ok {
		return
	}

	snap := s.player

	dirX, dirZ := gamemath.YawDirection(p.Yaw)
	if p.Motion.Kind == MotionDashing {
		dirX, dirZ = p.Motion.DashDirX, p.Motion.DashDirZ
	}

	exitX, exitZ, dirX, dirZ, redirected := s.exitPlacement(gx, gz, dirX, dirZ, next)

	if !next.Cache().Valid() {
		next.RebuildCache()
	}

	from := s.level
	s.store = next
	s.level = dest

	s.player = snap
	p.X, p.Z = exitX, exitZ
	if redirected {
		p.Yaw = math.Atan2(dirX, -dirZ)
	}
	if p.Motion.Kind == MotionDashing {
		p.Motion.DashDirX, p.Motion.DashDirZ = dirX, dirZ
	}

	if g := next.GroundHeightAt(p.X, p.Z, p.Y); g > p.Y {
		p.Y = g
		if p.VY < 0 {
			p.VY = 0
		}
	}

	p.PortalCooldown = PortalCooldown
	s.emit(Event{
		Kind: EventPortal,
		X:    p.X, Y: p.Y, Z: p.Z,
		FromLevel: from,
		ToLevel:   dest,
	})
}

// exitPlacement computes where the player reappears in the destination level.
// Border cells map to the opposite border, offset inward along the incoming
// direction; when that direction is near-tangent or points outward at the
// destination it is replaced by the border's inward normal (redirected=true).
// Interior cells exit one step forward through the triggering tile's centre.
func (s *Sim) exitPlacement(gx, gz int, dirX, dirZ float64, next *terrain.Store) (x, z, outDirX, outDirZ float64, redirected bool) {
	w, h := s.store.Size()
	nw, nh := next.Size()
	p := &s.player

	onX := gx == 0 || gx == w-1
	onZ := gz == 0 || gz == h-1

	switch {
	case onX && (!onZ || math.Abs(dirX) >= math.Abs(dirZ)):
		faceX := float64(nw) / 2 // exit through the east border
		inwardX := -1.0
		if gx != 0 {
			faceX = -float64(nw) / 2
			inwardX = 1.0
		}
		if dirX*inwardX < 0.1 {
			dirX, dirZ = inwardX, 0
			redirected = true
		}
		x = faceX + dirX*PortalExitInset
		z = gamemath.Clamp(p.Z, -float64(nh)/2+PortalExitInset, float64(nh)/2-PortalExitInset) + dirZ*PortalExitInset
	case onZ:
		faceZ := float64(nh) / 2
		inwardZ := -1.0
		if gz != 0 {
			faceZ = -float64(nh) / 2
			inwardZ = 1.0
		}
		if dirZ*inwardZ < 0.1 {
			dirX, dirZ = 0, inwardZ
			redirected = true
		}
		z = faceZ + dirZ*PortalExitInset
		x = gamemath.Clamp(p.X, -float64(nw)/2+PortalExitInset, float64(nw)/2-PortalExitInset) + dirX*PortalExitInset
	default:
		cx, cz := s.store.CellCenter(gx, gz)
		x = cx + dirX
		z = cz + dirZ
	}
	return x, z, dirX, dirZ, redirected
}
