package combat

// planFormation fans units of the same role out laterally. Offsets are
// smoothed so the line re-forms gradually after deaths.
func (w *World) planFormation() {
	smooth := w.Cat.Combat.FormationSmoothing
	for _, side := range [2]Side{Human, Opponent} {
		groups := map[string][]*Unit{}
		var roles []string
		for _, u := range w.Units {
			if u.Owner != side || !u.Alive() {
				continue
			}
			role := u.def.Role
			if _, ok := groups[role]; !ok {
				roles = append(roles, role)
			}
			groups[role] = append(groups[role], u)
		}
		for _, role := range roles {
			group := groups[role]
			spread := w.Cat.Spread(role)
			n := float64(len(group))
			for i, u := range group {
				target := (float64(i) - (n-1)/2) * spread
				u.Offset = u.Offset*smooth + target*(1-smooth)
			}
		}
	}
}

// formationSpeed is the slowest speed among the side's moving units, 0 if none.
func (w *World) formationSpeed(side Side) float64 {
	speed := 0.0
	for _, u := range w.Units {
		if u.Owner != side || u.Status != Moving {
			continue
		}
		if speed == 0 || u.def.Speed < speed {
			speed = u.def.Speed
		}
	}
	return speed
}
