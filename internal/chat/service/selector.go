package service

// Selector addresses the conversation to open: either an existing
// conversation id or the user on the other side.
type Selector interface {
	isSelector()
}

// ByConversationID opens an existing conversation.
type ByConversationID struct {
	ID uint64
}

// ByRecipientID opens (creating if needed) the conversation with a user.
type ByRecipientID struct {
	ID uint64
}

func (ByConversationID) isSelector() {}
func (ByRecipientID) isSelector()    {}
