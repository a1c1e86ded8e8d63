package solver

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
)

// agentState is the gob shape of an Agent; maps and unexported fields
// are flattened into slices so sessions can round-trip through the db.
type agentState struct {
	Width, Height int
	MovesMade     []Cell
	Safes         []Cell
	Mines         []Cell
	Knowledge     []sentenceState
}

type sentenceState struct {
	Cells []Cell
	Count int
}

func (s CellSet) slice() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	return cells
}

func (a *Agent) Bytes() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := agentState{
		Width:     a.width,
		Height:    a.height,
		MovesMade: a.movesMade.slice(),
		Safes:     a.safes.slice(),
		Mines:     a.mines.slice(),
	}
	for _, s := range a.knowledge {
		state.Knowledge = append(state.Knowledge, sentenceState{
			Cells: s.cells.slice(),
			Count: s.count,
		})
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeAgent(buf []byte, rnd *rand.Rand) (*Agent, error) {
	var state agentState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&state)
	if err != nil {
		return nil, err
	}

	a := NewAgent(state.Width, state.Height, rnd)
	for _, c := range state.MovesMade {
		a.movesMade.Add(c)
	}
	for _, c := range state.Safes {
		a.safes.Add(c)
	}
	for _, c := range state.Mines {
		a.mines.Add(c)
	}
	for _, s := range state.Knowledge {
		a.knowledge = append(a.knowledge, NewSentence(NewCellSet(s.Cells...), s.Count))
	}
	return a, nil
}
