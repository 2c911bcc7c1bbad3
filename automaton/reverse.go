package automaton

// Reverse transforms a in place into the automaton for the reversed
// language: a fresh start state is created, every transition's source
// and target are swapped (and with them every state's
// Inbounds/Outbounds), every previously accepting state gains an
// Epsilon edge from the new start and stops being accepting itself,
// and the old start state becomes the sole accepting state.
//
// Grounded on original_source's Automaton::reverse().
func (a *Automaton) Reverse() {
	oldStart := a.Start
	newStart := a.AddState()
	a.Start = newStart

	for i := range a.Transitions {
		a.Transitions[i].Source, a.Transitions[i].Target = a.Transitions[i].Target, a.Transitions[i].Source
	}

	for i := range a.States {
		id := StateID(i)
		if id == newStart {
			continue
		}
		a.States[i].Inbounds, a.States[i].Outbounds = a.States[i].Outbounds, a.States[i].Inbounds
		if a.States[i].Accepted {
			a.AddEpsilon(newStart, id)
			a.States[i].Accepted = false
		}
	}

	a.States[oldStart].Accepted = true
}
