package sim

// stepVertical integrates gravity and resolves landing and ceiling contact.
// Dashing and frozen players have gravity suspended; ball mode never reaches
// this point.
func (s *Sim) stepVertical(dt float64) {
	p := &s.player

	switch p.Motion.Kind {
	case MotionFrozen:
		return
	case MotionDashing:
		p.VY = 0
		p.Motion.DashTimer -= dt
		if p.Motion.DashTimer <= 0 {
			p.Motion = MotionState{Kind: MotionAirborne}
			if max := s.cfg.maxRunSpeed(); p.Speed > max {
				p.Speed = max
			}
		}
		return
	}

	prevY := p.Y
	p.VY += Gravity * dt
	candidate := p.Y + p.VY*dt

	ground := s.store.GroundHeightAt(p.X, p.Z, p.Y)
	if p.VY <= 0 && candidate <= ground {
		p.Y = ground
		if s.store.HazardAt(p.X, p.Z, ground) {
			// Lethal surface: keep vy, enter ball mode.
			p.Motion = MotionState{Kind: MotionBall}
			s.emit(Event{Kind: EventBall, X: p.X, Y: p.Y, Z: p.Z})
			return
		}
		p.VY = 0
		if p.Motion.Kind == MotionAirborne {
			// One-shot on the airborne-to-grounded edge.
			p.DashUsed = false
			s.emit(Event{Kind: EventLanded, X: p.X, Y: p.Y, Z: p.Z})
		}
		p.Motion = MotionState{Kind: MotionGrounded}
		return
	}

	p.Y = candidate
	if p.Motion.Kind == MotionGrounded {
		p.Motion = MotionState{Kind: MotionAirborne}
		p.JumpStartY = prevY
	}

	if p.VY > 0 {
		ceiling := s.store.CeilingHeightAt(p.X, p.Z, prevY)
		if p.Y >= ceiling-ContactEps {
			p.Y = ceiling - ContactEps
			if s.store.HazardAt(p.X, p.Z, ceiling) {
				p.VY = CeilingSpike
				p.Motion = MotionState{Kind: MotionBall}
				s.emit(Event{Kind: EventBall, X: p.X, Y: p.Y, Z: p.Z})
				return
			}
			// Safe bonk: stop rising, stay airborne.
			p.VY = 0
			s.emit(Event{Kind: EventCeilingBonk, X: p.X, Y: p.Y, Z: p.Z})
		}
	}
}
