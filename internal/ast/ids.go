package ast

type (
	// NodeID indexes Nodes.Arena (1-based, 0 = отсутствует).
	NodeID uint32
	// PayloadID indexes the payload arena selected by the node kind.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
