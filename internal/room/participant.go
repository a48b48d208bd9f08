package room

// Participant is one connected player inside a room. Identity maps 1:1 to a
// transport session; a player that reconnects gets a fresh Participant.
type Participant struct {
	ID   string
	Name string
	Host bool

	// Live flips to false the moment a disconnect is observed; the
	// participant is removed from the room in the same step.
	Live bool

	sink Sink
}

func (p *Participant) seat() Seat {
	return Seat{ID: p.ID, Name: p.Name, Host: p.Host}
}

func (p *Participant) deliver(ev Event) {
	if p.sink != nil {
		p.sink.Deliver(ev)
	}
}
