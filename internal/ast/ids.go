package ast

type (
	FileID uint32
	ItemID uint32
)

const (
	NoFileID FileID = 0
	NoItemID ItemID = 0
)

func (id FileID) IsValid() bool { return id != NoFileID }
func (id ItemID) IsValid() bool { return id != NoItemID }
