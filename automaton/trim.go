package automaton

// ReachableTrim discards every state (and the transitions between
// them) not reachable from Start via a breadth-first walk over
// Outbounds, renumbering the survivors while preserving each state's
// relative transition order — the priority order transition-sensitive
// consumers (the rich interpreter, powerset's closure) depend on.
//
// Grounded on original_source's Automaton::reachableTrim().
func (a *Automaton) ReachableTrim() {
	if a.Start == InvalidState {
		return
	}

	reachable := map[StateID]bool{a.Start: true}
	queue := []StateID{a.Start}
	var useful []TransitionID

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, tid := range a.States[cur].Outbounds {
			useful = append(useful, tid)
			target := a.Transitions[tid].Target
			if !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}
	}

	if len(reachable) == len(a.States) {
		return
	}

	oldToNew := make(map[StateID]StateID, len(reachable))
	newStates := make([]State, 0, len(reachable))
	for id := StateID(0); int(id) < len(a.States); id++ {
		if reachable[id] {
			oldToNew[id] = StateID(len(newStates))
			newStates = append(newStates, State{Accepted: a.States[id].Accepted})
		}
	}

	newTransitions := make([]Transition, 0, len(useful))
	for _, tid := range useful {
		t := a.Transitions[tid]
		newSrc, newTgt := oldToNew[t.Source], oldToNew[t.Target]
		newID := TransitionID(len(newTransitions))
		newTransitions = append(newTransitions, Transition{Source: newSrc, Target: newTgt, Kind: t.Kind, Range: t.Range})
		newStates[newSrc].Outbounds = append(newStates[newSrc].Outbounds, newID)
		newStates[newTgt].Inbounds = append(newStates[newTgt].Inbounds, newID)
	}

	a.States = newStates
	a.Transitions = newTransitions
	a.Start = oldToNew[a.Start]
}
