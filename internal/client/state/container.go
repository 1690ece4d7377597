package state

// API is the full server surface the container needs, satisfied by
// *transport.Client.
type API interface {
	EntityAPI
	ChatAPI
}

// Container wires the client stores together. There are no package-level
// singletons; construct one per session and pass it down explicitly.
type Container struct {
	Entities *EntityStore
	Chats    *ChatStore
}

// NewContainer builds the stores. The chat store reports assistant-created
// entities to the entity store through the listener interface.
func NewContainer(api API) *Container {
	entities := NewEntityStore(api)
	return &Container{
		Entities: entities,
		Chats:    NewChatStore(api, entities),
	}
}

// Reset clears every store, e.g. on logout.
func (c *Container) Reset() {
	c.Entities.Reset()
	c.Chats.Reset()
}
